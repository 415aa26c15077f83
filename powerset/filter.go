// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package powerset

import (
	"math"
	"math/bits"
)

// withinCardinality reports whether the subset encoded by mask has at most
// max members. A nil max disables the check.
func withinCardinality(mask uint32, max *int) bool {
	return max == nil || bits.OnesCount32(mask) <= *max
}

// MaskToSubset fills out with the members of c selected by mask, walking the
// mask from the least significant bit. When sum is non-nil the returned value
// reports whether the included values add up to *sum, otherwise it is always
// true. A total that does not fit in an int64 saturates at math.MaxInt64 and
// never matches a required sum.
func MaskToSubset(mask uint32, c *Collection, out *Subset, sum *int64) bool {
	var (
		src      int
		dst      int
		total    int64
		overflow bool
	)

	for bitsLeft := mask; bitsLeft != 0; bitsLeft >>= 1 {
		if bitsLeft&1 == 1 {
			item := c.items[src]
			out.Items[dst] = item.Reference()
			total, overflow = addValue(total, item.value, overflow)
			dst++
		}
		src++
	}

	out.Mask = mask
	out.Count = dst
	out.Sum = total

	if sum == nil {
		return true
	}
	return !overflow && total == *sum
}

// addValue adds the non-negative v to total, saturating on overflow.
func addValue(total, v int64, overflow bool) (int64, bool) {
	if overflow || total > math.MaxInt64-v {
		return math.MaxInt64, true
	}
	return total + v, false
}
