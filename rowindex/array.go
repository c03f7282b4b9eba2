// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rowindex

import (
	"fmt"
	"math"

	"github.com/grailbio/base/errors"
)

// FromInt32s constructs an Arr32 RowIndex from an explicit index array,
// taking ownership of buf.  Indices must be non-negative; min and max are
// found by a linear scan.
func FromInt32s(buf []int32) (*RowIndex, error) {
	if int64(len(buf)) > math.MaxInt32 {
		return nil, errors.E(errors.Invalid,
			fmt.Sprintf("rowindex: %d indices exceed the 32-bit length limit", len(buf)))
	}
	ri := &RowIndex{kind: Arr32, length: int64(len(buf)), ind32: buf}
	if len(buf) > 0 {
		mn, mx := buf[0], buf[0]
		for _, x := range buf[1:] {
			if x < mn {
				mn = x
			}
			if x > mx {
				mx = x
			}
		}
		ri.min, ri.max = int64(mn), int64(mx)
	}
	return ri, nil
}

// FromInt64s constructs an Arr64 RowIndex from an explicit index array,
// taking ownership of buf.  The 64-bit encoding is kept even when every
// index would fit in an int32: the caller chose the storage width, and
// this constructor preserves it.  Use Compactify to narrow explicitly.
func FromInt64s(buf []int64) (*RowIndex, error) {
	ri := &RowIndex{kind: Arr64, length: int64(len(buf)), ind64: buf}
	if len(buf) > 0 {
		mn, mx := buf[0], buf[0]
		for _, x := range buf[1:] {
			if x < mn {
				mn = x
			}
			if x > mx {
				mx = x
			}
		}
		ri.min, ri.max = mn, mx
	}
	return ri, nil
}

// Compactify narrows an Arr64 RowIndex to Arr32 in place and reports
// whether it did.  It is a no-op when the encoding is already narrow or
// when either the length or the largest index does not fit in an int32.
// The mapping and its min/max are unchanged either way.
//
// The 32-bit buffer is written through an aliased view of the 64-bit
// backing array rather than a fresh allocation.  Ascending k keeps this
// safe: dst[k] lands inside src[k/2], which was already read.
func (ri *RowIndex) Compactify() bool {
	if ri.kind != Arr64 || ri.max > math.MaxInt32 || ri.length > math.MaxInt32 {
		return false
	}
	src := ri.ind64
	dst := unsafeInt64sToInt32s(src)
	for k, x := range src {
		dst[k] = int32(x)
	}
	ri.ind32 = dst[:len(src):len(src)]
	ri.ind64 = nil
	ri.kind = Arr32
	return true
}
