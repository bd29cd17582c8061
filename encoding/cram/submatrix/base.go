// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package submatrix

const (
	// NumBases is the number of substitutable bases.
	NumBases = 5
	// CodesPerBase is the number of substitution codes per reference base.
	CodesPerBase = NumBases - 1
	// SymbolSpace is the number of byte values a base may take.  Only 7-bit
	// values are valid bases; 0 and anything >= SymbolSpace are rejected.
	SymbolSpace = 128
)

// Bases lists the substitutable bases in matrix order.  A base's index in
// this list is both its position in the packed matrix and its precedence when
// two substitutions are equally frequent.
var Bases = [NumBases]byte{'A', 'C', 'G', 'T', 'N'}

// baseIndexTable maps a byte to its index in Bases, or -1.  Only upper case
// entries are set.
var baseIndexTable = func() (t [256]int8) {
	for i := range t {
		t[i] = -1
	}
	for i, b := range Bases {
		t[b] = int8(i)
	}
	return
}()

// BaseIndex returns the position of b in Bases, or -1 if b is not one of the
// (upper case) substitutable bases.
func BaseIndex(b byte) int {
	return int(baseIndexTable[b])
}

// IsBase reports whether b is one of the upper case substitutable bases.
func IsBase(b byte) bool {
	return baseIndexTable[b] >= 0
}

// validSymbol reports whether b can index the expanded tables.
func validSymbol(b byte) bool {
	return b > 0 && b < SymbolSpace
}

func isLower(b byte) bool {
	return b >= 'a' && b <= 'z'
}

func toLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
