// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package column defines the minimal columnar-storage contract consumed by
// package rowindex: a storage-type tag plus a contiguous byte buffer.  The
// full column implementation (views, type conversion, stats) lives above
// this package; rowindex only ever reads Bool8 payloads.
package column

import (
	"fmt"

	"github.com/grailbio/base/log"
)

// SType tags the physical storage type of a column's buffer.
type SType uint8

const (
	// Bool8 is a boolean stored as one byte per row, 0 or 1.
	Bool8 SType = iota
	// Int8 is a signed 8-bit integer.
	Int8
	// Int32 is a signed 32-bit integer in host byte order.
	Int32
	// Int64 is a signed 64-bit integer in host byte order.
	Int64
	// Float64 is an IEEE-754 double in host byte order.
	Float64

	nSType
)

var stypeNames = [nSType]string{"Bool8", "Int8", "Int32", "Int64", "Float64"}
var stypeSizes = [nSType]int{1, 1, 4, 8, 8}

func (st SType) String() string {
	if st >= nSType {
		return fmt.Sprintf("SType(%d)", uint8(st))
	}
	return stypeNames[st]
}

// ElemSize returns the per-row byte width of the storage type.
func (st SType) ElemSize() int {
	if st >= nSType {
		log.Panicf("column: unknown stype %d", uint8(st))
	}
	return stypeSizes[st]
}

// Column is a typed, contiguous buffer holding one value per row.  It owns
// its buffer; callers must not mutate Data() while the column is shared.
type Column struct {
	stype SType
	data  []byte
}

// New returns a zero-filled column of nrows rows.
func New(st SType, nrows int64) *Column {
	if nrows < 0 {
		log.Panicf("column: negative row count %d", nrows)
	}
	return &Column{stype: st, data: make([]byte, nrows*int64(st.ElemSize()))}
}

// NewBool8 wraps vals as a boolean column, taking ownership of the slice.
// Each byte must be 0 or 1.
func NewBool8(vals []byte) *Column {
	return &Column{stype: Bool8, data: vals}
}

// SType returns the storage-type tag.
func (c *Column) SType() SType { return c.stype }

// Data returns the raw buffer.  The caller must not modify it.
func (c *Column) Data() []byte { return c.data }

// NRows returns the number of rows the buffer holds.
func (c *Column) NRows() int64 {
	return int64(len(c.data)) / int64(c.stype.ElemSize())
}
