// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rowindex

import (
	"fmt"
	"math"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/simd"
	"github.com/grailbio/table/column"
)

// FromMask constructs a RowIndex selecting the rows of the first nrows
// entries of col whose byte is 1.  col must be a Bool8 column with bytes
// restricted to {0, 1}.  The result is array-encoded in the narrowest
// sufficient width; indices are ascending.
func FromMask(col *column.Column, nrows int64) (*RowIndex, error) {
	if col.SType() != column.Bool8 {
		return nil, errors.E(errors.Invalid,
			fmt.Sprintf("rowindex: mask column has stype %v, want Bool8", col.SType()))
	}
	data := col.Data()[:nrows]

	// Counting pass.  FirstGreater8 vectorizes the zero runs; the bytes are
	// 0/1 by the Bool8 contract, so >0 means selected.
	var nout, maxrow int64
	for pos := 0; pos < len(data); pos++ {
		pos = simd.FirstGreater8(data, 0, pos)
		if pos == len(data) {
			break
		}
		nout++
		maxrow = int64(pos)
	}

	ri := &RowIndex{length: nout, max: maxrow}
	switch {
	case nout == 0:
		ri.kind = Arr32
	case nout <= math.MaxInt32 && maxrow <= math.MaxInt32:
		out := make([]int32, 0, nout)
		for pos := 0; pos < len(data); pos++ {
			pos = simd.FirstGreater8(data, 0, pos)
			if pos == len(data) {
				break
			}
			out = append(out, int32(pos))
		}
		ri.min = int64(out[0])
		ri.kind = Arr32
		ri.ind32 = out
	default:
		out := make([]int64, 0, nout)
		for pos := 0; pos < len(data); pos++ {
			pos = simd.FirstGreater8(data, 0, pos)
			if pos == len(data) {
				break
			}
			out = append(out, int64(pos))
		}
		ri.min = out[0]
		ri.kind = Arr64
		ri.ind64 = out
	}
	return ri, nil
}

// FromMaskIndexed is the view-column complement of FromMask: the boolean
// column is read through an existing RowIndex, and the positions recorded
// are the destination positions of that RowIndex, not the underlying rows.
// A view column maps to a (data column, rowindex) pair, so filtering it
// reduces to this.
//
// The caller guarantees ri.Max() < col.NRows().
func FromMaskIndexed(col *column.Column, ri *RowIndex) (*RowIndex, error) {
	if col.SType() != column.Bool8 {
		return nil, errors.E(errors.Invalid,
			fmt.Sprintf("rowindex: mask column has stype %v, want Bool8", col.SType()))
	}
	data := col.Data()

	// Counting pass over the composed positions.  Each ascends i, so the
	// last selected i is the maximum.
	var nout, maxi int64
	ri.Each(func(i uint64, j int64) {
		if data[j] == 1 {
			nout++
			maxi = int64(i)
		}
	})

	res := &RowIndex{length: nout, max: maxi}
	switch {
	case nout == 0:
		res.kind = Arr32
	case nout <= math.MaxInt32 && maxi <= math.MaxInt32:
		out := make([]int32, 0, nout)
		ri.Each(func(i uint64, j int64) {
			if data[j] == 1 {
				out = append(out, int32(i))
			}
		})
		res.min = int64(out[0])
		res.kind = Arr32
		res.ind32 = out
	default:
		out := make([]int64, 0, nout)
		ri.Each(func(i uint64, j int64) {
			if data[j] == 1 {
				out = append(out, int64(i))
			}
		})
		res.min = out[0]
		res.kind = Arr64
		res.ind64 = out
	}
	return res, nil
}
