// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package readfeature

import (
	"fmt"

	"github.com/grailbio/cramsub/encoding/cram/submatrix"
)

// CRAM read feature operators.
const (
	OpSubstitution byte = 'X'
	OpReadBase     byte = 'B'
	OpInsertion    byte = 'I'
	OpDeletion     byte = 'D'
	OpSoftClip     byte = 'S'
	OpHardClip     byte = 'H'
	OpRefSkip      byte = 'N'
	OpPadding      byte = 'P'
)

// Feature is a single difference between a read and the reference.
type Feature interface {
	// Operator returns the CRAM operator byte of the feature.
	Operator() byte
	// Position returns the 1-based position of the feature in the read.
	Position() int
}

// Substitution replaces the reference base at Pos with one of the other
// substitutable bases.  Code is the substitution matrix code of
// (RefBase, Base); it is filled in by EncodeSubstitutions, and Base is filled
// in from it by DecodeSubstitutions.
type Substitution struct {
	Pos     int
	RefBase byte
	Base    byte
	Code    byte
}

// ReadBase is a mismatch that can't be expressed as a substitution, e.g. an
// IUPAC ambiguity code in the read or the reference.
type ReadBase struct {
	Pos  int
	Base byte
	Qual byte
}

// Insertion is a run of read bases absent from the reference.
type Insertion struct {
	Pos   int
	Bases []byte
}

// SoftClip is a run of unaligned read bases at either end of the read.
type SoftClip struct {
	Pos   int
	Bases []byte
}

// Deletion is a run of reference bases absent from the read.
type Deletion struct {
	Pos int
	Len int
}

// RefSkip is a skipped reference region, e.g. an intron.
type RefSkip struct {
	Pos int
	Len int
}

// HardClip records bases clipped from the stored read.
type HardClip struct {
	Pos int
	Len int
}

// Padding is a silent deletion from padded reference.
type Padding struct {
	Pos int
	Len int
}

func (f *Substitution) Operator() byte { return OpSubstitution }
func (f *ReadBase) Operator() byte     { return OpReadBase }
func (f *Insertion) Operator() byte    { return OpInsertion }
func (f *SoftClip) Operator() byte     { return OpSoftClip }
func (f *Deletion) Operator() byte     { return OpDeletion }
func (f *RefSkip) Operator() byte      { return OpRefSkip }
func (f *HardClip) Operator() byte     { return OpHardClip }
func (f *Padding) Operator() byte      { return OpPadding }

func (f *Substitution) Position() int { return f.Pos }
func (f *ReadBase) Position() int     { return f.Pos }
func (f *Insertion) Position() int    { return f.Pos }
func (f *SoftClip) Position() int     { return f.Pos }
func (f *Deletion) Position() int     { return f.Pos }
func (f *RefSkip) Position() int      { return f.Pos }
func (f *HardClip) Position() int     { return f.Pos }
func (f *Padding) Position() int      { return f.Pos }

func (f *Substitution) String() string {
	return fmt.Sprintf("%c%d:%c>%c", OpSubstitution, f.Pos, f.RefBase, f.Base)
}

// Record is the feature list of one read.
type Record struct {
	Name string
	// AlignmentStart is the 0-based reference position of the first aligned
	// base, or -1 for unmapped reads.
	AlignmentStart int
	ReadLength     int
	Features       []Feature
}

// Substitutions implements submatrix.Record.
func (r *Record) Substitutions() []submatrix.Substitution {
	if r == nil {
		return nil
	}
	var subs []submatrix.Substitution
	for _, f := range r.Features {
		if s, ok := f.(*Substitution); ok {
			subs = append(subs, submatrix.Substitution{RefBase: s.RefBase, Base: s.Base})
		}
	}
	return subs
}

// Observations returns records as substitution matrix inputs.
func Observations(records []*Record) []submatrix.Record {
	r := make([]submatrix.Record, len(records))
	for i, rec := range records {
		r[i] = rec
	}
	return r
}
