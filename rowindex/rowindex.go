// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rowindex

import (
	"fmt"

	"github.com/grailbio/base/log"
)

// Kind distinguishes the three internal encodings of a RowIndex.  The
// numeric values are stable; do not reorder.
type Kind int8

const (
	// Slice encodes the arithmetic progression start + step*i.
	Slice Kind = iota
	// Arr32 encodes an explicit array of int32 source indices.
	Arr32
	// Arr64 encodes an explicit array of int64 source indices.
	Arr64
)

func (k Kind) String() string {
	switch k {
	case Slice:
		return "slice"
	case Arr32:
		return "arr32"
	case Arr64:
		return "arr64"
	}
	return fmt.Sprintf("Kind(%d)", int8(k))
}

// RowIndex maps every dense destination position i in [0, Len()) to a
// non-negative source row index.  The zero value is an empty slice-encoded
// mapping.  A nil *RowIndex is accepted by Merge as the identity mapping.
//
// Exactly one payload is meaningful, selected by kind: (start, step) for
// Slice, ind32 for Arr32, ind64 for Arr64.  For the array kinds the buffer
// length always equals length, except that an empty Arr32 may carry a nil
// buffer.
type RowIndex struct {
	kind   Kind
	length int64
	// min and max bound every index the mapping produces.  Both are 0 when
	// the mapping is empty.
	min int64
	max int64

	start int64
	step  int64
	ind32 []int32
	ind64 []int64
}

// Kind returns the encoding of the mapping.
func (ri *RowIndex) Kind() Kind { return ri.kind }

// Len returns the number of destination positions.
func (ri *RowIndex) Len() int64 { return ri.length }

// Min returns the smallest source index produced, or 0 if Len() == 0.
func (ri *RowIndex) Min() int64 { return ri.min }

// Max returns the largest source index produced, or 0 if Len() == 0.
func (ri *RowIndex) Max() int64 { return ri.max }

// Each calls fn with every (destination, source) pair of the mapping, in
// ascending destination order.  It is the single traversal primitive; any
// algorithm that accepts an arbitrary RowIndex should be written against it
// rather than switching on Kind().
func (ri *RowIndex) Each(fn func(i uint64, j int64)) {
	switch ri.kind {
	case Slice:
		j := ri.start
		for i := int64(0); i < ri.length; i++ {
			fn(uint64(i), j)
			j += ri.step
		}
	case Arr32:
		for i, x := range ri.ind32 {
			fn(uint64(i), int64(x))
		}
	case Arr64:
		for i, x := range ri.ind64 {
			fn(uint64(i), x)
		}
	default:
		log.Panicf("rowindex: corrupt kind %d", ri.kind)
	}
}

// Indices64 materializes the mapping into a fresh []int64.
func (ri *RowIndex) Indices64() []int64 {
	out := make([]int64, ri.length)
	ri.Each(func(i uint64, j int64) {
		out[i] = j
	})
	return out
}

// String returns a compact debug form of the mapping.
func (ri *RowIndex) String() string {
	if ri == nil {
		return "rowindex(nil)"
	}
	switch ri.kind {
	case Slice:
		return fmt.Sprintf("slice(start=%d step=%d n=%d)", ri.start, ri.step, ri.length)
	default:
		return fmt.Sprintf("%v(n=%d min=%d max=%d)", ri.kind, ri.length, ri.min, ri.max)
	}
}
