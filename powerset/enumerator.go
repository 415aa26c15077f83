// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package powerset

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/powerset/helper/metrics"
)

// ctxCheckInterval is the number of masks visited between context checks.
const ctxCheckInterval = 1 << 16

// EmitFunc receives each accepted subset in increasing mask order. The subset
// is scratch storage and must not be retained after the call returns.
type EmitFunc func(*Subset) error

// Stats summarises a completed enumeration.
type Stats struct {
	Masks              uint64
	SkippedCardinality uint64
	RejectedSum        uint64
	Accepted           uint64
}

// Enumerator walks the mask space of a collection.
type Enumerator struct {
	collection *Collection
	opts       Options
	logger     hclog.Logger
}

// NewEnumerator returns an Enumerator for c. The sum filter is only valid for
// integer collections.
func NewEnumerator(c *Collection, opts Options, logger hclog.Logger) (*Enumerator, error) {
	if c == nil || c.Len() == 0 {
		return nil, ErrEmptyCollection
	}
	if opts.Sum != nil && c.Mode() != ModeInteger {
		return nil, errors.New("sum filter requires an integer collection")
	}
	if opts.MaxItems != nil && (*opts.MaxItems < 0 || *opts.MaxItems > MaxItems) {
		return nil, ErrItemLimitExceeded
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Enumerator{
		collection: c,
		opts:       opts,
		logger:     logger.Named("enumerator"),
	}, nil
}

// Bounds returns the first mask visited and the exclusive upper bound of the
// walk.
func (e *Enumerator) Bounds() (start, end uint64) {
	if !e.opts.IncludeEmpty {
		start = 1
	}
	return start, 1 << uint(e.collection.Len())
}

// Run visits every mask in increasing order, calling emit for each subset
// that passes every active filter. An error from emit or a cancelled context
// stops the walk.
func (e *Enumerator) Run(ctx context.Context, emit EmitFunc) (Stats, error) {
	var stats Stats

	defer func(start time.Time) {
		labels := []metrics.Label{{Name: "mode", Value: e.collection.Mode().String()}}
		metrics.MeasureSince([]string{"enumerate", "duration"}, start)
		metrics.SetGauge([]string{"enumerate", "masks"}, float32(stats.Masks))
		metrics.IncrCounterWithLabels([]string{"enumerate", "accepted"}, float32(stats.Accepted), labels)
		metrics.IncrCounterWithLabels([]string{"enumerate", "skipped_cardinality"}, float32(stats.SkippedCardinality), labels)
		metrics.IncrCounterWithLabels([]string{"enumerate", "rejected_sum"}, float32(stats.RejectedSum), labels)
	}(time.Now())

	start, end := e.Bounds()
	e.logger.Debug("starting enumeration",
		"items", e.collection.Len(), "mode", e.collection.Mode(),
		"first_mask", start, "end_mask", end)

	scratch := NewSubset(e.collection.Len())

	for m := start; m < end; m++ {
		stats.Masks++
		if stats.Masks%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				e.logger.Warn("enumeration interrupted", "mask", m)
				return stats, err
			}
		}

		mask := uint32(m)
		if !withinCardinality(mask, e.opts.MaxItems) {
			stats.SkippedCardinality++
			continue
		}
		if !MaskToSubset(mask, e.collection, scratch, e.opts.Sum) {
			stats.RejectedSum++
			continue
		}

		stats.Accepted++
		if err := emit(scratch); err != nil {
			return stats, err
		}
	}

	e.logger.Debug("enumeration complete",
		"masks", stats.Masks, "accepted", stats.Accepted,
		"skipped_cardinality", stats.SkippedCardinality,
		"rejected_sum", stats.RejectedSum)

	return stats, nil
}
