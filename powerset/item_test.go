// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package powerset

import (
	"errors"
	"testing"

	"github.com/shoenig/test/must"
)

func TestFromText(t *testing.T) {
	testCases := []struct {
		name        string
		raw         string
		mode        Mode
		expected    string
		expectedInt int64
		expectedErr bool
	}{
		{name: "string", raw: "abc", mode: ModeString, expected: "abc"},
		{name: "empty string", raw: "", mode: ModeString, expected: ""},
		{name: "digits as string", raw: "007", mode: ModeString, expected: "007"},
		{name: "integer", raw: "42", mode: ModeInteger, expected: "42", expectedInt: 42},
		{name: "leading zeros", raw: "007", mode: ModeInteger, expected: "7", expectedInt: 7},
		{name: "zero", raw: "0", mode: ModeInteger, expected: "0", expectedInt: 0},
		{name: "negative", raw: "-1", mode: ModeInteger, expectedErr: true},
		{name: "plus sign", raw: "+1", mode: ModeInteger, expectedErr: true},
		{name: "letters", raw: "abc", mode: ModeInteger, expectedErr: true},
		{name: "trailing space", raw: "1 ", mode: ModeInteger, expectedErr: true},
		{name: "empty integer", raw: "", mode: ModeInteger, expectedErr: true},
		{name: "overflow", raw: "9223372036854775808", mode: ModeInteger, expectedErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			item, err := FromText(tc.raw, tc.mode)
			if tc.expectedErr {
				must.ErrorIs(t, err, ErrNonIntegerItem)
				return
			}
			must.NoError(t, err)
			must.Eq(t, tc.mode, item.Mode())
			must.Eq(t, tc.expected, item.String())
			must.Eq(t, tc.expectedInt, item.Int())
		})
	}
}

func TestItem_Reference(t *testing.T) {
	item, err := FromText("alpha", ModeString)
	must.NoError(t, err)
	must.True(t, item.Owned())

	ref := item.Reference()
	must.False(t, ref.Owned())
	must.Eq(t, item.Text(), ref.Text())
	must.True(t, item.Owned())

	num, err := FromText("12", ModeInteger)
	must.NoError(t, err)
	must.False(t, num.Owned())
	must.True(t, num == num.Reference())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Integer")
	must.NoError(t, err)
	must.Eq(t, ModeInteger, m)

	m, err = ParseMode("string")
	must.NoError(t, err)
	must.Eq(t, ModeString, m)

	_, err = ParseMode("float")
	must.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("array")
	must.NoError(t, err)
	must.Eq(t, FormatArray, f)

	f, err = ParseFormat("SPACE")
	must.NoError(t, err)
	must.Eq(t, FormatSpace, f)

	_, err = ParseFormat("csv")
	must.Error(t, err)
}

func TestBuild(t *testing.T) {
	t.Run("string items keep order", func(t *testing.T) {
		c, err := Build([]string{"b", "a", "b"}, ModeString)
		must.NoError(t, err)
		must.Eq(t, 3, c.Len())
		must.Eq(t, ModeString, c.Mode())
		must.Eq(t, "b", c.Item(0).Text())
		must.Eq(t, "a", c.Item(1).Text())
		must.Eq(t, "b", c.Item(2).Text())
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Build(nil, ModeString)
		must.ErrorIs(t, err, ErrEmptyCollection)
	})

	t.Run("too many items", func(t *testing.T) {
		raw := make([]string, MaxItems+1)
		_, err := Build(raw, ModeString)
		must.ErrorIs(t, err, ErrCollectionTooLarge)
	})

	t.Run("max items", func(t *testing.T) {
		raw := make([]string, MaxItems)
		c, err := Build(raw, ModeString)
		must.NoError(t, err)
		must.Eq(t, MaxItems, c.Len())
	})

	t.Run("first invalid integer is reported", func(t *testing.T) {
		_, err := Build([]string{"1", "x", "y"}, ModeInteger)
		must.ErrorIs(t, err, ErrNonIntegerItem)

		var itemErr *NonIntegerItemError
		must.True(t, errors.As(err, &itemErr))
		must.Eq(t, 1, itemErr.Index)
		must.Eq(t, "x", itemErr.Text)
		must.EqError(t, err, `argument 1 "x" is not an integer`)
	})
}
