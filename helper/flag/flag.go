// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package flag

import (
	"fmt"
	"strconv"
	"strings"
)

// StringFlag implements the flag.Value interface and allows multiple calls to
// the same variable to append a list.
type StringFlag []string

func (s *StringFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *StringFlag) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// FuncBoolVar is a type of boolean flag that calls the given function when
// the flag is present.
type FuncBoolVar func(b bool) error

func (f FuncBoolVar) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	return f(v)
}
func (f FuncBoolVar) String() string   { return "" }
func (f FuncBoolVar) IsBoolFlag() bool { return true }

// FuncDigitsVar is a type of flag that accepts a function, converts the
// user's value to an int64, and then calls the given function. Only unsigned
// runs of decimal digits are accepted.
type FuncDigitsVar func(v int64) error

func (f FuncDigitsVar) Set(s string) error {
	if s == "" {
		return fmt.Errorf("%q is not a number", s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return fmt.Errorf("%q is not a number", s)
		}
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("%q is out of range", s)
	}
	return f(v)
}
func (f FuncDigitsVar) String() string   { return "" }
func (f FuncDigitsVar) IsBoolFlag() bool { return false }
