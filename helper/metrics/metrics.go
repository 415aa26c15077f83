// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package metrics

import (
	"sync/atomic"
	"time"

	m "github.com/armon/go-metrics"
)

// defaultLabels are the label set applied to every data point emitted.
var defaultLabels atomic.Value

// Label is a wrapper around m.Label so callers don't have to juggle importing
// both packages when emitting metrics.
type Label = m.Label

// SetDefaultLabels sets defaultLabels with the configured default set of
// labels.
func SetDefaultLabels(labels []Label) { defaultLabels.Store(labels) }

// loadDefaultLabels returns the configured default labels, or nil when none
// have been set yet.
func loadDefaultLabels() []Label {
	l, _ := defaultLabels.Load().([]Label)
	return l
}

// SetGauge wraps m.SetGaugeWithLabels and sets the default labels on the
// emitted metric.
func SetGauge(key []string, val float32) {
	m.SetGaugeWithLabels(key, val, loadDefaultLabels())
}

// MeasureSince wraps m.MeasureSinceWithLabels and sets the default labels on
// the emitted metric.
func MeasureSince(key []string, start time.Time) {
	m.MeasureSinceWithLabels(key, start, loadDefaultLabels())
}

// IncrCounterWithLabels wraps m.IncrCounterWithLabels and appends the default
// labels to the passed labels on the emitted metric.
func IncrCounterWithLabels(key []string, val float32, labels []Label) {
	m.IncrCounterWithLabels(key, val, append(labels, loadDefaultLabels()...))
}
