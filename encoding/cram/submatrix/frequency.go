// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package submatrix

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Substitution is a single observed substitution of Base for RefBase.
type Substitution struct {
	RefBase byte
	Base    byte
}

// Record is anything carrying substitution observations, typically a CRAM
// compression record.  Records without substitution features return nil.
type Record interface {
	Substitutions() []Substitution
}

// Frequencies counts substitutions by (reference base, read base).  It is
// indexed by raw byte value; only rows and columns of Bases are used when
// building a matrix.
type Frequencies struct {
	counts [SymbolSpace][SymbolSpace]uint64
	total  uint64
}

// Add records one substitution of base for refBase.  Both bytes must be in
// 1..127.
func (f *Frequencies) Add(refBase, base byte) error {
	if !validSymbol(refBase) || !validSymbol(base) {
		return errors.E(errors.Invalid,
			fmt.Sprintf("submatrix: invalid substitution of base value %d for reference base value %d", base, refBase))
	}
	f.counts[refBase][base]++
	f.total++
	return nil
}

// Count returns the number of times base was substituted for refBase.
func (f *Frequencies) Count(refBase, base byte) uint64 {
	if refBase >= SymbolSpace || base >= SymbolSpace {
		return 0
	}
	return f.counts[refBase][base]
}

// Total returns the number of substitutions added.
func (f *Frequencies) Total() uint64 {
	return f.total
}

// row returns the counts of every read base for refBase.
func (f *Frequencies) row(refBase byte) *[SymbolSpace]uint64 {
	return &f.counts[refBase]
}

// Tally counts the substitutions of all records.  A single invalid
// substitution fails the whole tally, since it means the record stream is
// corrupt.
func Tally(records []Record) (*Frequencies, error) {
	f := &Frequencies{}
	for _, r := range records {
		if r == nil {
			continue
		}
		for _, s := range r.Substitutions() {
			if err := f.Add(s.RefBase, s.Base); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
