// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rowindex_test

import (
	"math"
	"testing"

	"github.com/grailbio/table/rowindex"
	"github.com/grailbio/testutil/expect"
)

func TestFromInt32s(t *testing.T) {
	ri, err := rowindex.FromInt32s([]int32{5, 2, 9, 2})
	expect.NoError(t, err)
	expect.EQ(t, ri.Kind(), rowindex.Arr32)
	expect.EQ(t, ri.Len(), int64(4))
	expect.EQ(t, ri.Min(), int64(2))
	expect.EQ(t, ri.Max(), int64(9))
	expect.EQ(t, ri.Indices64(), []int64{5, 2, 9, 2})
	checkInvariants(t, ri)
}

func TestFromInt64sPreservesWidth(t *testing.T) {
	// Narrowing would be legal here, but the caller picked the 64-bit
	// encoding and the constructor must keep it.
	ri, err := rowindex.FromInt64s([]int64{1, 2, 3})
	expect.NoError(t, err)
	expect.EQ(t, ri.Kind(), rowindex.Arr64)
	expect.EQ(t, ri.Min(), int64(1))
	expect.EQ(t, ri.Max(), int64(3))
	checkInvariants(t, ri)
}

func TestCompactify(t *testing.T) {
	ri, err := rowindex.FromInt64s([]int64{1000, 0, 77})
	expect.NoError(t, err)
	want := ri.Indices64()
	expect.True(t, ri.Compactify())
	expect.EQ(t, ri.Kind(), rowindex.Arr32)
	expect.EQ(t, ri.Len(), int64(3))
	expect.EQ(t, ri.Min(), int64(0))
	expect.EQ(t, ri.Max(), int64(1000))
	expect.EQ(t, ri.Indices64(), want)
	checkInvariants(t, ri)

	// Idempotent: a second call has nothing to narrow.
	expect.False(t, ri.Compactify())
	expect.EQ(t, ri.Indices64(), want)
}

func TestCompactifyRefusesWide(t *testing.T) {
	ri, err := rowindex.FromInt64s([]int64{3, math.MaxInt32 + 1})
	expect.NoError(t, err)
	want := ri.Indices64()
	expect.False(t, ri.Compactify())
	expect.EQ(t, ri.Kind(), rowindex.Arr64)
	expect.EQ(t, ri.Indices64(), want)
	checkInvariants(t, ri)
}

func TestCompactifyRefusesNonArr64(t *testing.T) {
	ri, err := rowindex.FromSlice(0, 10, 1)
	expect.NoError(t, err)
	expect.False(t, ri.Compactify())
	expect.EQ(t, ri.Kind(), rowindex.Slice)

	ri, err = rowindex.FromInt32s([]int32{1, 2})
	expect.NoError(t, err)
	expect.False(t, ri.Compactify())
	expect.EQ(t, ri.Kind(), rowindex.Arr32)
}

func TestCompactifyLong(t *testing.T) {
	// Long enough to cross several vector widths; the narrowing writes
	// through an aliased view of the same backing array, so every element
	// must survive verbatim.
	buf := make([]int64, 3000)
	for i := range buf {
		buf[i] = int64((i * 7919) % 100003)
	}
	ri, err := rowindex.FromInt64s(buf)
	expect.NoError(t, err)
	want := ri.Indices64()
	expect.True(t, ri.Compactify())
	expect.EQ(t, ri.Indices64(), want)
	checkInvariants(t, ri)
}
