// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package readfeature

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/cramsub/encoding/cram/submatrix"
	"github.com/grailbio/cramsub/encoding/fasta"
	"github.com/grailbio/hts/sam"
)

// refSpan returns the number of reference bases covered by cigar.
func refSpan(cigar sam.Cigar) (span int) {
	for _, co := range cigar {
		switch co.Type() {
		case sam.CigarMatch, sam.CigarEqual, sam.CigarMismatch, sam.CigarDeletion, sam.CigarSkipped:
			span += co.Len()
		}
	}
	return
}

func toUpper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

// FromSAM computes the read features of samr against ref.  Mismatches
// between two substitutable bases become Substitution features; any other
// mismatch becomes a ReadBase feature.  Unmapped reads have no features.
func FromSAM(samr *sam.Record, ref fasta.Fasta) (*Record, error) {
	rec := &Record{
		Name:           samr.Name,
		AlignmentStart: -1,
		ReadLength:     samr.Seq.Length,
	}
	if samr.Flags&sam.Unmapped != 0 || samr.Ref == nil || samr.Pos < 0 {
		return rec, nil
	}
	rec.AlignmentStart = samr.Pos

	var refSeq []byte
	if span := refSpan(samr.Cigar); span > 0 {
		var err error
		if refSeq, err = ref.Get(samr.Ref.Name(), uint64(samr.Pos), uint64(samr.Pos+span)); err != nil {
			return nil, errors.E(err, fmt.Sprintf("read %s", samr.Name))
		}
	}
	seq := samr.Seq.Expand()
	qual := samr.Qual

	posInRead := 0 // 0-based; features use 1-based positions.
	posInRef := 0  // offset into refSeq
	readBases := func(n int) ([]byte, error) {
		if posInRead+n > len(seq) {
			return nil, errors.E(errors.Invalid,
				fmt.Sprintf("read %s: CIGAR %v consumes more than %d read bases", samr.Name, samr.Cigar, len(seq)))
		}
		return seq[posInRead : posInRead+n], nil
	}
	for _, co := range samr.Cigar {
		cLen := co.Len()
		switch co.Type() {
		case sam.CigarMatch, sam.CigarEqual, sam.CigarMismatch:
			bases, err := readBases(cLen)
			if err != nil {
				return nil, err
			}
			for i, readBase := range bases {
				if readBase == '=' {
					continue
				}
				refBase := refSeq[posInRef+i]
				upperRead := toUpper(readBase)
				if upperRead == refBase {
					continue
				}
				pos := posInRead + i + 1
				if submatrix.IsBase(refBase) && submatrix.IsBase(upperRead) {
					rec.Features = append(rec.Features, &Substitution{Pos: pos, RefBase: refBase, Base: upperRead})
					continue
				}
				rb := &ReadBase{Pos: pos, Base: readBase, Qual: 0xff}
				if posInRead+i < len(qual) {
					rb.Qual = qual[posInRead+i]
				}
				rec.Features = append(rec.Features, rb)
			}
			posInRead += cLen
			posInRef += cLen
		case sam.CigarInsertion, sam.CigarSoftClipped:
			bases, err := readBases(cLen)
			if err != nil {
				return nil, err
			}
			bases = append([]byte(nil), bases...)
			if co.Type() == sam.CigarInsertion {
				rec.Features = append(rec.Features, &Insertion{Pos: posInRead + 1, Bases: bases})
			} else {
				rec.Features = append(rec.Features, &SoftClip{Pos: posInRead + 1, Bases: bases})
			}
			posInRead += cLen
		case sam.CigarDeletion:
			rec.Features = append(rec.Features, &Deletion{Pos: posInRead + 1, Len: cLen})
			posInRef += cLen
		case sam.CigarSkipped:
			rec.Features = append(rec.Features, &RefSkip{Pos: posInRead + 1, Len: cLen})
			posInRef += cLen
		case sam.CigarHardClipped:
			rec.Features = append(rec.Features, &HardClip{Pos: posInRead + 1, Len: cLen})
		case sam.CigarPadded:
			rec.Features = append(rec.Features, &Padding{Pos: posInRead + 1, Len: cLen})
		default:
			return nil, errors.E(errors.Invalid, fmt.Sprintf("read %s: unexpected CIGAR code %v", samr.Name, co))
		}
	}
	return rec, nil
}
