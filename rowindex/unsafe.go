// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rowindex

// Unsafe casting between []int64 and []int32 views of one backing array,
// needed by the in-place narrowing in Compactify.

import (
	"reflect"
	"unsafe"
)

// unsafeInt64sToInt32s returns an []int32 view of src's backing array, with
// len and cap doubled.  The view aliases src: element 2k of the result
// occupies the same memory as the low-address half of src[k].
func unsafeInt64sToInt32s(src []int64) (d []int32) {
	sh := (*reflect.SliceHeader)(unsafe.Pointer(&src))
	dh := (*reflect.SliceHeader)(unsafe.Pointer(&d))
	dh.Data = sh.Data
	dh.Len = sh.Len * 2
	dh.Cap = sh.Cap * 2
	return d
}
