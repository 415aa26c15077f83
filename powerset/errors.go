// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package powerset

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOption is returned when an unrecognised option is supplied.
	ErrInvalidOption = errors.New("invalid option")

	// ErrMissingOptionArgument is returned when an option which expects a
	// value is supplied without one.
	ErrMissingOptionArgument = errors.New("missing option argument")

	// ErrNonIntegerOptionArgument is returned when an option which expects a
	// numeric value is supplied with something other than decimal digits.
	ErrNonIntegerOptionArgument = errors.New("option argument is not an integer")

	// ErrItemLimitExceeded is returned when the cardinality ceiling is larger
	// than MaxItems.
	ErrItemLimitExceeded = errors.New("item limit exceeded")

	// ErrNonIntegerItem is returned when an item fails integer validation
	// while the collection is built in integer mode.
	ErrNonIntegerItem = errors.New("item is not an integer")

	// ErrEmptyCollection is returned when no items are supplied.
	ErrEmptyCollection = errors.New("no items supplied")

	// ErrCollectionTooLarge is returned when more than MaxItems items are
	// supplied.
	ErrCollectionTooLarge = errors.New("too many items")
)

// NonIntegerItemError identifies the first input value which could not be
// parsed while building an integer collection.
type NonIntegerItemError struct {
	Index int
	Text  string
}

func (e *NonIntegerItemError) Error() string {
	return fmt.Sprintf("argument %d %q is not an integer", e.Index, e.Text)
}

func (e *NonIntegerItemError) Unwrap() error { return ErrNonIntegerItem }
