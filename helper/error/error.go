// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package error

import (
	"strings"

	multierror "github.com/hashicorp/go-multierror"
)

// MultiErrorFunc renders every accumulated error on a single line, separated
// by commas, so validation failures read naturally on the console.
func MultiErrorFunc(errs []error) string {
	var b strings.Builder
	for i, err := range errs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// FormattedMultiError returns err with MultiErrorFunc as its formatter, or
// nil when err holds no errors.
func FormattedMultiError(err *multierror.Error) error {
	if err == nil || len(err.Errors) == 0 {
		return nil
	}
	err.ErrorFormat = MultiErrorFunc
	return err
}
