// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rowindex

import (
	"math"

	"github.com/grailbio/base/log"
)

// Merge composes two row-index mappings.  If ab maps rows of A onto rows
// of B, and bc maps rows of B onto rows of C, the result maps rows of A
// onto rows of C: result(i) = ab(bc(i)) for i in [0, bc.Len()).  A nil ab
// is the identity, so Merge(nil, bc) is a clone of bc.  A nil bc returns
// nil.
//
// The result is re-encoded in the smallest sufficient form: slice-of-slice
// stays a slice, an int32 gather stays Arr32, and 64-bit gathers are
// narrowed via Compactify when their bounds allow.
//
// Indirect reads assume bc.Max() < ab.Len(); out-of-range indices are the
// caller's bug and are not checked here.
func Merge(ab, bc *RowIndex) *RowIndex {
	if bc == nil {
		return nil
	}
	n := bc.length
	if n == 0 {
		// Canonical empty mapping.
		return &RowIndex{kind: Slice, start: 0, step: 1}
	}
	res := &RowIndex{length: n}

	switch bc.kind {
	case Slice:
		startBC, stepBC := bc.start, bc.step
		switch {
		case ab == nil:
			res.kind = Slice
			res.start, res.step = startBC, stepBC
			res.min, res.max = bc.min, bc.max
		case ab.kind == Slice:
			// The composition of two slices is again a slice.
			start := ab.start + ab.step*startBC
			step := ab.step * stepBC
			res.kind = Slice
			res.start, res.step = start, step
			end := start + step*(n-1)
			if step >= 0 {
				res.min, res.max = start, end
			} else {
				res.min, res.max = end, start
			}
		case stepBC == 0:
			// A zero-step bc repeats one row of ab n times, which stays
			// expressible as a slice even though ab is array-encoded.
			var v int64
			if ab.kind == Arr32 {
				v = int64(ab.ind32[startBC])
			} else {
				v = ab.ind64[startBC]
			}
			res.kind = Slice
			res.start, res.step = v, 0
			res.min, res.max = v, v
		case ab.kind == Arr32:
			// Every index in ab fits in an int32, so any slice over ab
			// does too.
			buf := make([]int32, n)
			src := ab.ind32
			mn, mx := int32(math.MaxInt32), int32(0)
			for i, ic := int64(0), startBC; i < n; i, ic = i+1, ic+stepBC {
				x := src[ic]
				buf[i] = x
				if x < mn {
					mn = x
				}
				if x > mx {
					mx = x
				}
			}
			res.kind = Arr32
			res.ind32 = buf
			res.min, res.max = int64(mn), int64(mx)
		case ab.kind == Arr64:
			// A slice of an Arr64 may or may not stay wide; gather first,
			// narrow after.
			buf := make([]int64, n)
			src := ab.ind64
			mn, mx := int64(math.MaxInt64), int64(0)
			for i, ic := int64(0), startBC; i < n; i, ic = i+1, ic+stepBC {
				x := src[ic]
				buf[i] = x
				if x < mn {
					mn = x
				}
				if x > mx {
					mx = x
				}
			}
			res.kind = Arr64
			res.ind64 = buf
			res.min, res.max = mn, mx
			res.Compactify()
		default:
			log.Panicf("rowindex: corrupt kind %d in merge", ab.kind)
		}

	case Arr32, Arr64:
		switch {
		case ab == nil:
			res.kind = bc.kind
			res.min, res.max = bc.min, bc.max
			if bc.kind == Arr32 {
				res.ind32 = append([]int32(nil), bc.ind32...)
			} else {
				res.ind64 = append([]int64(nil), bc.ind64...)
			}
		case ab.kind == Slice:
			buf := make([]int64, n)
			if bc.kind == Arr32 {
				for i, x := range bc.ind32 {
					buf[i] = ab.start + int64(x)*ab.step
				}
			} else {
				for i, x := range bc.ind64 {
					buf[i] = ab.start + x*ab.step
				}
			}
			res.kind = Arr64
			res.ind64 = buf
			// An affine map is monotone, so the bounds follow from bc's
			// bounds and the sign of the step.
			if ab.step >= 0 {
				res.min = ab.start + ab.step*bc.min
				res.max = ab.start + ab.step*bc.max
			} else {
				res.min = ab.start + ab.step*bc.max
				res.max = ab.start + ab.step*bc.min
			}
			res.Compactify()
		case ab.kind == Arr32 && bc.kind == Arr32:
			buf := make([]int32, n)
			mn, mx := int32(math.MaxInt32), int32(0)
			src := ab.ind32
			for i, b := range bc.ind32 {
				x := src[b]
				buf[i] = x
				if x < mn {
					mn = x
				}
				if x > mx {
					mx = x
				}
			}
			res.kind = Arr32
			res.ind32 = buf
			res.min, res.max = int64(mn), int64(mx)
		default:
			// At least one side is Arr64; gather wide, then narrow.  The
			// three loops are expanded so the inner body stays free of
			// per-element kind dispatch.
			buf := make([]int64, n)
			mn, mx := int64(math.MaxInt64), int64(0)
			switch {
			case ab.kind == Arr32:
				src := ab.ind32
				for i, b := range bc.ind64 {
					x := int64(src[b])
					buf[i] = x
					if x < mn {
						mn = x
					}
					if x > mx {
						mx = x
					}
				}
			case bc.kind == Arr32:
				src := ab.ind64
				for i, b := range bc.ind32 {
					x := src[b]
					buf[i] = x
					if x < mn {
						mn = x
					}
					if x > mx {
						mx = x
					}
				}
			default:
				src := ab.ind64
				for i, b := range bc.ind64 {
					x := src[b]
					buf[i] = x
					if x < mn {
						mn = x
					}
					if x > mx {
						mx = x
					}
				}
			}
			res.kind = Arr64
			res.ind64 = buf
			res.min, res.max = mn, mx
			res.Compactify()
		}

	default:
		log.Panicf("rowindex: corrupt kind %d in merge", bc.kind)
	}
	return res
}
