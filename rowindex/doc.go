// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package rowindex implements compact row-index mappings over columnar
// data.  A RowIndex describes, without copying any column storage, which
// source row each position of a "view" refers to; the three internal
// encodings (arithmetic slice, int32 array, int64 array) are chosen to
// minimize memory while keeping the mapping exact.
//
// RowIndexes are not modified after construction, except by Compactify,
// which rewrites the storage of its receiver in place (narrowing the width,
// never changing the mapping).  Read-only use is safe from several
// goroutines at once; a Compactify call is not safe alongside other use of
// the same RowIndex.
package rowindex
