// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package powerset

// Subset is one candidate member of the power set. Items alias the items of
// the collection it was derived from and keep their input order.
type Subset struct {
	// Mask is the membership bit pattern the subset was derived from.
	Mask uint32

	// Items holds the included items. Only the first Count entries are
	// meaningful when the subset is used as scratch storage.
	Items []Item

	// Count is the cardinality of the subset.
	Count int

	// Sum is the total of the included values, saturating at
	// math.MaxInt64. It is only populated for integer collections.
	Sum int64
}

// NewSubset returns scratch storage able to hold a subset of a collection of
// size n.
func NewSubset(n int) *Subset {
	return &Subset{Items: make([]Item, n)}
}

// Members returns the included items.
func (s *Subset) Members() []Item {
	return s.Items[:s.Count]
}

// Empty reports whether the subset has no members.
func (s *Subset) Empty() bool { return s.Count == 0 }
