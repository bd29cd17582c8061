// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/cramsub/encoding/cram/submatrix"
)

// decode writes the read base of every (reference base, code) pair of the
// hex-encoded packed matrix to out, upper case reference bases first.
// Unassigned codes are printed as '.'.
func decode(hexMatrix string, out io.Writer) error {
	encoded, err := hex.DecodeString(hexMatrix)
	if err != nil {
		return errors.E(errors.Invalid, err, "decode matrix", hexMatrix)
	}
	m, err := submatrix.FromBytes(encoded)
	if err != nil {
		return err
	}
	w := tsv.NewWriter(out)
	w.WriteString("#REF\tCODE0\tCODE1\tCODE2\tCODE3")
	if err := w.EndLine(); err != nil {
		return err
	}
	var refs []byte
	refs = append(refs, submatrix.Bases[:]...)
	for _, b := range submatrix.Bases {
		refs = append(refs, b+('a'-'A'))
	}
	for _, ref := range refs {
		w.WriteByte(ref)
		for code := byte(0); code < submatrix.CodesPerBase; code++ {
			base, err := m.Base(ref, code)
			if errors.Is(errors.Integrity, err) {
				// Corrupt matrices leave some codes unassigned.
				base = '.'
			} else if err != nil {
				return err
			}
			w.WriteByte(base)
		}
		if err := w.EndLine(); err != nil {
			return err
		}
	}
	return w.Flush()
}
