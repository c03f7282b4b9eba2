// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rowindex

import (
	"fmt"
	"math"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// validSlice reports whether (start, count, step) describes an arithmetic
// progression whose every term lies in [0, MaxInt64].  The endpoint
// start + step*(count-1) is never computed directly; the bounds are
// rewritten as divisions so that no intermediate can overflow.
func validSlice(start, count, step int64) bool {
	if start < 0 || count < 0 {
		return false
	}
	if count > 1 {
		if step < -(start / (count - 1)) {
			return false
		}
		if step > (math.MaxInt64-start)/(count-1) {
			return false
		}
	}
	return true
}

// FromSlice constructs a Slice-encoded RowIndex mapping i to start+step*i
// for i in [0, count).
//
// A (start, count, step) triple is used instead of Python-style
// (start, end, step): the end is then unambiguously start + count*step,
// step may safely be 0, and positive and negative steps need no special
// casing.
func FromSlice(start, count, step int64) (*RowIndex, error) {
	if !validSlice(start, count, step) {
		return nil, errors.E(errors.Invalid,
			fmt.Sprintf("rowindex: invalid slice (start=%d count=%d step=%d)", start, count, step))
	}
	ri := &RowIndex{kind: Slice, length: count, start: start, step: step}
	if count > 0 {
		end := start + step*(count-1)
		if step >= 0 {
			ri.min, ri.max = start, end
		} else {
			ri.min, ri.max = end, start
		}
	}
	return ri, nil
}

// FromSliceList constructs an array-encoded RowIndex by concatenating the
// arithmetic progressions described by parallel (start, count, step)
// triples.  Zero-count triples are skipped.  The result is Arr32 when both
// the total length and the largest index fit in an int32, Arr64 otherwise.
func FromSliceList(starts, counts, steps []int64) (*RowIndex, error) {
	n := len(starts)
	if len(counts) != n || len(steps) != n {
		return nil, errors.E(errors.Invalid,
			fmt.Sprintf("rowindex: slice-list length mismatch (%d starts, %d counts, %d steps)",
				n, len(counts), len(steps)))
	}

	// First pass: total length and global index bounds, with the same
	// overflow discipline as FromSlice plus a running-total check.
	var count int64
	minidx, maxidx := int64(math.MaxInt64), int64(0)
	for k := 0; k < n; k++ {
		length := counts[k]
		if length == 0 {
			continue
		}
		if !validSlice(starts[k], length, steps[k]) || count > math.MaxInt64-length {
			return nil, errors.E(errors.Invalid,
				fmt.Sprintf("rowindex: invalid slice in list (start=%d count=%d step=%d)",
					starts[k], length, steps[k]))
		}
		start, step := starts[k], steps[k]
		end := start + step*(length-1)
		if start < minidx {
			minidx = start
		}
		if start > maxidx {
			maxidx = start
		}
		if end < minidx {
			minidx = end
		}
		if end > maxidx {
			maxidx = end
		}
		count += length
	}
	if maxidx == 0 {
		minidx = 0
	}
	if minidx < 0 || minidx > maxidx {
		log.Panicf("rowindex: slice-list bounds out of sync (min=%d max=%d)", minidx, maxidx)
	}

	ri := &RowIndex{length: count, min: minidx, max: maxidx}
	if count <= math.MaxInt32 && maxidx <= math.MaxInt32 {
		buf := make([]int32, 0, count)
		for k := 0; k < n; k++ {
			j := int32(starts[k])
			s := int32(steps[k])
			for l := int64(0); l < counts[k]; l++ {
				buf = append(buf, j)
				j += s
			}
		}
		ri.kind = Arr32
		ri.ind32 = buf
	} else {
		buf := make([]int64, 0, count)
		for k := 0; k < n; k++ {
			j := starts[k]
			s := steps[k]
			for l := int64(0); l < counts[k]; l++ {
				buf = append(buf, j)
				j += s
			}
		}
		ri.kind = Arr64
		ri.ind64 = buf
	}
	return ri, nil
}
