// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package submatrix implements the CRAM substitution matrix: the mapping
// between (reference base, read base) pairs and the 2-bit substitution codes
// stored in read features.
//
// A Matrix has two forms.  The packed form is five bytes, one for each of the
// bases A, C, G, T and N in that order.  Each byte holds four 2-bit codes, one
// for every other base in the same order, most significant pair first.  Codes
// are ranks: code 0 goes to the most frequent substitution of that reference
// base, so that the common case gets the shortest ITF8 encoding downstream.
//
// The expanded form is a pair of 128x128 tables indexed directly by base
// byte values, used for (reference, read) -> code lookups while writing and
// (reference, code) -> read lookups while reading.  The read-side table also
// answers for lower-case reference bases, since other CRAM writers may emit
// them, but codes are never generated for lower-case reference bases.
//
// A Matrix is immutable once built and may be shared across goroutines.
//
//   freqs, err := submatrix.Tally(records)
//   m := submatrix.FromFrequencies(freqs)
//   header.SubstitutionMatrix = m.EncodedBytes()
//
//   m, err := submatrix.FromBytes(header.SubstitutionMatrix)
//   readBase, err := m.Base(refBase, code)
package submatrix
