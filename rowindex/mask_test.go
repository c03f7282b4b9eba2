// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rowindex_test

import (
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/table/column"
	"github.com/grailbio/table/rowindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMask(t *testing.T) {
	col := column.NewBool8([]byte{0, 1, 0, 1, 1})
	ri, err := rowindex.FromMask(col, 5)
	require.NoError(t, err)
	assert.Equal(t, rowindex.Arr32, ri.Kind())
	assert.Equal(t, int64(3), ri.Len())
	assert.Equal(t, []int64{1, 3, 4}, ri.Indices64())
	assert.Equal(t, int64(1), ri.Min())
	assert.Equal(t, int64(4), ri.Max())
	checkInvariants(t, ri)
}

func TestFromMaskEmpty(t *testing.T) {
	col := column.NewBool8([]byte{0, 0, 0, 0})
	ri, err := rowindex.FromMask(col, 4)
	require.NoError(t, err)
	assert.Equal(t, rowindex.Arr32, ri.Kind())
	assert.Equal(t, int64(0), ri.Len())
	assert.Equal(t, int64(0), ri.Min())
	assert.Equal(t, int64(0), ri.Max())
	checkInvariants(t, ri)
}

func TestFromMaskPrefix(t *testing.T) {
	// nrows restricts the scan to a prefix of the column.
	col := column.NewBool8([]byte{1, 0, 1, 1, 1})
	ri, err := rowindex.FromMask(col, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 2}, ri.Indices64())
}

func TestFromMaskLong(t *testing.T) {
	// Long sparse mask: exercises the vectorized zero-run skipping.
	vals := make([]byte, 200000)
	var want []int64
	for i := 0; i < len(vals); i += 4099 {
		vals[i] = 1
		want = append(want, int64(i))
	}
	ri, err := rowindex.FromMask(column.NewBool8(vals), int64(len(vals)))
	require.NoError(t, err)
	assert.Equal(t, want, ri.Indices64())
	assert.Equal(t, want[0], ri.Min())
	assert.Equal(t, want[len(want)-1], ri.Max())
	checkInvariants(t, ri)
}

func TestFromMaskRejectsNonBool(t *testing.T) {
	col := column.New(column.Int32, 8)
	ri, err := rowindex.FromMask(col, 8)
	assert.Nil(t, ri)
	require.Error(t, err)
	assert.True(t, errors.Is(errors.Invalid, err))
}

func TestFromMaskIndexed(t *testing.T) {
	// The view selects rows [10, 12, 14, 16, 18]; the mask is over the
	// underlying data, but the recorded positions are the view's.
	view, err := rowindex.FromSlice(10, 5, 2)
	require.NoError(t, err)
	vals := make([]byte, 20)
	vals[12] = 1
	vals[16] = 1
	vals[17] = 1 // not visible through the view
	ri, err := rowindex.FromMaskIndexed(column.NewBool8(vals), view)
	require.NoError(t, err)
	assert.Equal(t, rowindex.Arr32, ri.Kind())
	assert.Equal(t, []int64{1, 3}, ri.Indices64())
	assert.Equal(t, int64(1), ri.Min())
	assert.Equal(t, int64(3), ri.Max())
	checkInvariants(t, ri)
}

func TestFromMaskIndexedArrayView(t *testing.T) {
	view, err := rowindex.FromInt32s([]int32{4, 0, 2, 4})
	require.NoError(t, err)
	vals := []byte{0, 1, 1, 0, 1}
	ri, err := rowindex.FromMaskIndexed(column.NewBool8(vals), view)
	require.NoError(t, err)
	// Positions 0, 2, 3 of the view land on set mask bytes.
	assert.Equal(t, []int64{0, 2, 3}, ri.Indices64())
	checkInvariants(t, ri)
}

func TestFromMaskIndexedEmpty(t *testing.T) {
	view, err := rowindex.FromSlice(0, 4, 1)
	require.NoError(t, err)
	ri, err := rowindex.FromMaskIndexed(column.NewBool8(make([]byte, 4)), view)
	require.NoError(t, err)
	assert.Equal(t, int64(0), ri.Len())
	assert.Equal(t, rowindex.Arr32, ri.Kind())
	checkInvariants(t, ri)
}

func TestFromMaskIndexedRejectsNonBool(t *testing.T) {
	view, err := rowindex.FromSlice(0, 4, 1)
	require.NoError(t, err)
	ri, err := rowindex.FromMaskIndexed(column.New(column.Float64, 4), view)
	assert.Nil(t, ri)
	assert.True(t, errors.Is(errors.Invalid, err))
}
