// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package powerset

import "fmt"

// MaxItems is the largest collection that can be enumerated. Masks are held
// in a uint32 and bit 31 is never used.
const MaxItems = 31

// Collection is the ordered, immutable input to an enumeration.
type Collection struct {
	mode  Mode
	items []Item
}

// Build creates one item per raw value, in order. Construction stops at the
// first value that cannot be parsed in the requested mode.
func Build(raw []string, mode Mode) (*Collection, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyCollection
	}
	if len(raw) > MaxItems {
		return nil, fmt.Errorf("%w: %d items supplied, at most %d are supported",
			ErrCollectionTooLarge, len(raw), MaxItems)
	}

	items := make([]Item, len(raw))
	for i, r := range raw {
		item, err := FromText(r, mode)
		if err != nil {
			return nil, &NonIntegerItemError{Index: i, Text: r}
		}
		items[i] = item
	}

	return &Collection{mode: mode, items: items}, nil
}

// Len returns the number of items in the collection.
func (c *Collection) Len() int { return len(c.items) }

// Mode returns the mode every item of the collection was built with.
func (c *Collection) Mode() Mode { return c.mode }

// Item returns the item at index i.
func (c *Collection) Item(i int) Item { return c.items[i] }
