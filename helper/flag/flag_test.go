// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package flag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringFlag(t *testing.T) {
	sv := new(StringFlag)
	assert.Nil(t, sv.Set("base.hcl"))
	assert.Nil(t, sv.Set("override.hcl"))
	assert.Equal(t, []string{"base.hcl", "override.hcl"}, []string(*sv))
	assert.Equal(t, "base.hcl,override.hcl", sv.String())
}

func TestFuncBoolVar(t *testing.T) {
	var got *bool

	sv := FuncBoolVar(func(b bool) error {
		got = &b
		return nil
	})

	assert.Nil(t, sv.Set("true"))
	assert.True(t, *got)
	assert.Nil(t, sv.Set("false"))
	assert.False(t, *got)
	assert.NotNil(t, sv.Set("maybe"))
	assert.Equal(t, "", sv.String())
	assert.True(t, sv.IsBoolFlag())
}

func TestFuncDigitsVar(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expected    int64
		expectedErr bool
	}{
		{name: "zero", input: "0", expected: 0},
		{name: "leading zeros", input: "007", expected: 7},
		{name: "max items", input: "31", expected: 31},
		{name: "empty", input: "", expectedErr: true},
		{name: "negative", input: "-3", expectedErr: true},
		{name: "plus sign", input: "+3", expectedErr: true},
		{name: "letters", input: "3a", expectedErr: true},
		{name: "overflow", input: "99999999999999999999", expectedErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got int64 = -1
			sv := FuncDigitsVar(func(v int64) error {
				got = v
				return nil
			})

			err := sv.Set(tc.input)
			if tc.expectedErr {
				assert.Error(t, err)
				assert.Equal(t, int64(-1), got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}

	assert.False(t, FuncDigitsVar(nil).IsBoolFlag())
}
