// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package readfeature describes an aligned read the way a CRAM compression
// record does: as a list of differences (read features) against the
// reference.
//
// Substitution features are the source of observations for the CRAM
// substitution matrix (see encoding/cram/submatrix); when a slice is written
// each substitution's read base is replaced by its matrix code, and when it is
// read the code is turned back into a base.
package readfeature
