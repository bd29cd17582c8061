// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package submatrix

import (
	"fmt"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

const (
	// noBase marks an unassigned baseByCode entry.
	noBase byte = 0
	// noCode marks an unassigned codeByBase entry.  Codes are 0..3, so 0 can't
	// be used.
	noCode byte = 0xff
)

// Matrix is a CRAM substitution matrix.  It is created by New,
// FromFrequencies or FromBytes and is read-only afterwards.
type Matrix struct {
	// encoded is the packed form, one byte per entry of Bases.
	encoded [NumBases]byte
	// codeByBase[ref][read] is the code for substituting read for ref, or
	// noCode.  Only upper case ref rows are populated.
	codeByBase [SymbolSpace][SymbolSpace]byte
	// baseByCode[ref][code] is the read base for (ref, code), or noBase.  Both
	// upper and lower case ref rows are populated.
	baseByCode [SymbolSpace][SymbolSpace]byte
}

func newMatrix() *Matrix {
	m := &Matrix{}
	for i := range m.codeByBase {
		row := &m.codeByBase[i]
		for j := range row {
			row[j] = noCode
		}
	}
	return m
}

// New tallies the substitutions of the given records and builds a matrix
// from them.
func New(records []Record) (*Matrix, error) {
	freqs, err := Tally(records)
	if err != nil {
		return nil, err
	}
	m := FromFrequencies(freqs)
	log.Debug.Printf("submatrix: built %v from %d records, %d substitutions", m, len(records), freqs.Total())
	return m, nil
}

// FromFrequencies builds a matrix that gives the lowest codes to the most
// frequent substitutions in freqs.
func FromFrequencies(freqs *Frequencies) *Matrix {
	m := newMatrix()
	for i, ref := range Bases {
		ranked := rankSubstitutes(ref, freqs.row(ref))
		m.encoded[i] = packRanks(ranked)
		m.setCodes(ref, ranked)
	}
	for _, ref := range Bases {
		for _, read := range Bases {
			if read == ref {
				continue
			}
			m.baseByCode[ref][m.codeByBase[ref][read]] = read
		}
		m.propagateLower(ref)
	}
	return m
}

// FromBytes rebuilds a matrix from its packed form, as returned by
// EncodedBytes.  The bytes are not checked for consistency: if a row assigns
// the same code twice, Base fails for the codes it leaves unassigned.
func FromBytes(encoded []byte) (*Matrix, error) {
	if len(encoded) != NumBases {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("submatrix: packed matrix must be %d bytes, got %d", NumBases, len(encoded)))
	}
	m := newMatrix()
	copy(m.encoded[:], encoded)
	for i, ref := range Bases {
		for _, r := range unpackRanks(ref, m.encoded[i]) {
			m.baseByCode[ref][r.rank] = r.base
		}
		m.propagateLower(ref)
	}
	for _, ref := range Bases {
		for code := byte(0); code < CodesPerBase; code++ {
			if read := m.baseByCode[ref][code]; read != noBase {
				m.codeByBase[ref][read] = code
			}
		}
	}
	return m, nil
}

// setCodes fills the codeByBase row of ref.
func (m *Matrix) setCodes(ref byte, ranked [CodesPerBase]rankedBase) {
	for _, r := range ranked {
		m.codeByBase[ref][r.base] = r.rank
	}
}

// propagateLower copies the baseByCode row of ref into its lower case row,
// so that lower case reference bases written by other implementations can be
// decoded.
func (m *Matrix) propagateLower(ref byte) {
	copy(m.baseByCode[toLower(ref)][:CodesPerBase], m.baseByCode[ref][:CodesPerBase])
}

// Code returns the substitution code for replacing refBase with readBase.
// refBase must be an upper case base; codes are never generated for lower
// case reference bases.
func (m *Matrix) Code(refBase, readBase byte) (byte, error) {
	if !validSymbol(refBase) {
		return 0, errors.E(errors.Invalid, fmt.Sprintf("submatrix: code requested for invalid reference base value %d", refBase))
	}
	if isLower(refBase) {
		return 0, errors.E(errors.NotSupported, fmt.Sprintf("submatrix: code requested for lower case reference base '%c'", refBase))
	}
	if !validSymbol(readBase) {
		return 0, errors.E(errors.Invalid, fmt.Sprintf("submatrix: code requested for invalid read base value %d", readBase))
	}
	code := m.codeByBase[refBase][readBase]
	if code == noCode {
		return 0, errors.E(errors.Invalid, fmt.Sprintf("submatrix: no substitution of '%c' for '%c'", readBase, refBase))
	}
	return code, nil
}

// Base returns the read base for substitution code on refBase.  refBase may
// be upper or lower case.  An error means the matrix doesn't match the data
// being decoded.
func (m *Matrix) Base(refBase, code byte) (byte, error) {
	if !validSymbol(refBase) {
		return 0, errors.E(errors.Invalid, fmt.Sprintf("submatrix: base requested for invalid reference base value %d", refBase))
	}
	if code >= CodesPerBase || m.baseByCode[refBase][code] == noBase {
		return 0, errors.E(errors.Integrity, fmt.Sprintf("submatrix: no substitute for reference base '%c' code %d", refBase, code))
	}
	return m.baseByCode[refBase][code], nil
}

// EncodedBytes returns the packed form of the matrix.
func (m *Matrix) EncodedBytes() []byte {
	b := make([]byte, NumBases)
	copy(b, m.encoded[:])
	return b
}

// String lists, for each upper case and then each lower case reference base,
// the read bases for codes 0..3; e.g. "A:GCTN\tC:AGTN\t...".  Unassigned
// entries are shown as '.'.
func (m *Matrix) String() string {
	var sb strings.Builder
	sb.Grow(2 * NumBases * (CodesPerBase + 3))
	row := func(ref byte) {
		sb.WriteByte(ref)
		sb.WriteByte(':')
		for code := 0; code < CodesPerBase; code++ {
			if b := m.baseByCode[ref][code]; b != noBase {
				sb.WriteByte(b)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\t')
	}
	for _, ref := range Bases {
		row(ref)
	}
	for _, ref := range Bases {
		row(toLower(ref))
	}
	return sb.String()
}
