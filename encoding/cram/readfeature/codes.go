// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package readfeature

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/cramsub/encoding/cram/submatrix"
)

// EncodeSubstitutions sets the Code of every substitution feature in records
// from m.
func EncodeSubstitutions(records []*Record, m *submatrix.Matrix) error {
	for _, r := range records {
		for _, f := range r.Features {
			s, ok := f.(*Substitution)
			if !ok {
				continue
			}
			code, err := m.Code(s.RefBase, s.Base)
			if err != nil {
				return errors.E(err, fmt.Sprintf("read %s, position %d", r.Name, s.Pos))
			}
			s.Code = code
		}
	}
	return nil
}

// DecodeSubstitutions sets the Base of every substitution feature in records
// from its RefBase and Code.  It fails if m does not match the matrix the
// codes were written with.
func DecodeSubstitutions(records []*Record, m *submatrix.Matrix) error {
	for _, r := range records {
		for _, f := range r.Features {
			s, ok := f.(*Substitution)
			if !ok {
				continue
			}
			base, err := m.Base(s.RefBase, s.Code)
			if err != nil {
				return errors.E(err, fmt.Sprintf("read %s, position %d", r.Name, s.Pos))
			}
			s.Base = base
		}
	}
	return nil
}
