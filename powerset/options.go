// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package powerset

import (
	"fmt"
	"strings"
)

// Format selects how accepted subsets are rendered.
type Format int

const (
	// FormatSpace renders members separated by a single space.
	FormatSpace Format = iota

	// FormatArray renders members as an array literal, for example
	// ["a", "b"] or [1, 2].
	FormatArray
)

func (f Format) String() string {
	switch f {
	case FormatSpace:
		return "space"
	case FormatArray:
		return "array"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat converts the configuration name of a format into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "space":
		return FormatSpace, nil
	case "array":
		return FormatArray, nil
	default:
		return 0, fmt.Errorf("invalid format %q", s)
	}
}

// Options is the frozen configuration of a single enumeration.
type Options struct {
	Mode         Mode
	Format       Format
	IncludeEmpty bool

	// MaxItems is the cardinality ceiling. Nil means unbounded.
	MaxItems *int

	// Sum is the required total of included values. Nil disables the sum
	// filter.
	Sum *int64
}
