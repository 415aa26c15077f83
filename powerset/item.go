// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package powerset

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects how raw input values are interpreted. It is chosen once per
// run and shared by every item of a collection.
type Mode int

const (
	ModeString Mode = iota
	ModeInteger
)

func (m Mode) String() string {
	switch m {
	case ModeString:
		return "string"
	case ModeInteger:
		return "integer"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts the configuration name of a mode into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "string":
		return ModeString, nil
	case "integer":
		return ModeInteger, nil
	default:
		return 0, fmt.Errorf("invalid mode %q", s)
	}
}

// Item is a single input value. String items either own their text or alias
// the text of another item; integer items are plain values.
type Item struct {
	mode  Mode
	text  string
	value int64
	owned bool
}

// FromText builds an Item from raw input. In integer mode raw must be a
// non-empty run of ASCII decimal digits, so signs are never accepted.
func FromText(raw string, mode Mode) (Item, error) {
	if mode == ModeString {
		return Item{mode: ModeString, text: strings.Clone(raw), owned: true}, nil
	}

	if !isDigits(raw) {
		return Item{}, ErrNonIntegerItem
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Item{}, fmt.Errorf("%w: %v", ErrNonIntegerItem, err)
	}
	return Item{mode: ModeInteger, value: v}, nil
}

// Reference returns a lightweight copy of the item. String items alias the
// same text and do not own it.
func (i Item) Reference() Item {
	r := i
	r.owned = false
	return r
}

func (i Item) Mode() Mode { return i.mode }

// Text returns the string value. It is empty for integer items.
func (i Item) Text() string { return i.text }

// Int returns the integer value. It is zero for string items.
func (i Item) Int() int64 { return i.value }

// Owned reports whether a string item owns its text.
func (i Item) Owned() bool { return i.owned }

// String returns the textual form used by the printers.
func (i Item) String() string {
	if i.mode == ModeInteger {
		return strconv.FormatInt(i.value, 10)
	}
	return i.text
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
