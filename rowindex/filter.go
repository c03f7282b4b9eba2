// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rowindex

import (
	"fmt"
	"math"
	"sync"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/traverse"
)

// Filter32 selects rows from the half-open range [row0, row1).  An
// implementation must write the indices of the selected rows into out in
// ascending order and return how many it wrote.  Indices are absolute, not
// relative to row0.  Filter functions must not fail; a fallible predicate
// has to be resolved by the caller before it gets here.
type Filter32 func(row0, row1 int64, out []int32) int32

// Filter64 is the wide variant of Filter32, reserved for tables longer
// than MaxInt32 rows.
type Filter64 func(row0, row1 int64, out []int64) int64

// filterChunkRows is the number of rows in one unit of parallel work in
// FromFilter32.  Each worker also carries a scratch buffer of this many
// indices.
const filterChunkRows = 65536

// FromFilter32 constructs a RowIndex from the rows of [0, nrows) selected
// by fn, evaluating fn over filterChunkRows-sized chunks in parallel.
//
// The output buffer is preallocated to nrows up front: growing it
// dynamically would force reallocation inside the commit protocol and
// stall the whole worker team.  Each worker filters a chunk into its own
// scratch buffer, then commits: in strictly ascending chunk order it
// reserves the next n slots of the output, n being the count fn returned
// for that chunk.  Because reservation
// order follows chunk order and fn emits ascending indices within a chunk,
// the assembled output is globally ascending.  The scratch-to-output copy
// happens after the worker leaves the commit section, so the section stays
// a few instructions long; the copied ranges are disjoint by construction.
func FromFilter32(fn Filter32, nrows int64) (*RowIndex, error) {
	if nrows < 0 || nrows > math.MaxInt32 {
		return nil, errors.E(errors.Invalid,
			fmt.Sprintf("rowindex: filter domain of %d rows, limit %d", nrows, math.MaxInt32))
	}
	out := make([]int32, nrows)
	outLength := int64(0)
	numChunks := (nrows + filterChunkRows - 1) / filterChunkRows

	var mu sync.Mutex
	committed := sync.NewCond(&mu)
	nextCommit := int64(0)
	scratch := sync.Pool{
		New: func() interface{} { return make([]int32, filterChunkRows) },
	}
	// Each traverse worker processes its chunks in ascending order, so the
	// holder of the lowest uncommitted chunk is never the one waiting, and
	// the commit loop cannot deadlock.
	_ = traverse.Each(int(numChunks), func(c int) error {
		buf := scratch.Get().([]int32)
		row0 := int64(c) * filterChunkRows
		row1 := row0 + filterChunkRows
		if row1 > nrows {
			row1 = nrows
		}
		n := int64(fn(row0, row1, buf))

		mu.Lock()
		for nextCommit != int64(c) {
			committed.Wait()
		}
		offset := outLength
		outLength += n
		nextCommit++
		committed.Broadcast()
		mu.Unlock()

		copy(out[offset:offset+n], buf[:n])
		scratch.Put(buf)
		return nil
	})

	out = out[:outLength:outLength]
	ri := &RowIndex{kind: Arr32, length: outLength, ind32: out}
	if outLength > 0 {
		ri.min = int64(out[0])
		ri.max = int64(out[outLength-1])
	}
	return ri, nil
}

// FromFilter64 would assemble a RowIndex over a domain wider than MaxInt32
// rows.  No caller needs it yet, so it is not implemented.
func FromFilter64(fn Filter64, nrows int64) (*RowIndex, error) {
	return nil, errors.E(errors.NotSupported, "rowindex: 64-bit filter constructor not implemented")
}
