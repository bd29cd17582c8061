// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package submatrix

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func freqRow(counts map[byte]uint64) *[SymbolSpace]uint64 {
	var row [SymbolSpace]uint64
	for b, n := range counts {
		row[b] = n
	}
	return &row
}

func TestRankSubstitutes(t *testing.T) {
	tests := []struct {
		ref    byte
		counts map[byte]uint64
		want   [CodesPerBase]rankedBase
		packed byte
	}{
		{
			ref:    'A',
			counts: map[byte]uint64{'G': 10, 'C': 5, 'T': 2},
			want:   [CodesPerBase]rankedBase{{'C', 1}, {'G', 0}, {'T', 2}, {'N', 3}},
			packed: 0x4b, // 01 00 10 11
		},
		{
			// No observations: ranks follow base order.
			ref:    'C',
			want:   [CodesPerBase]rankedBase{{'A', 0}, {'G', 1}, {'T', 2}, {'N', 3}},
			packed: 0x1b,
		},
		{
			// C and G tie above T and N; C wins the tie.
			ref:    'A',
			counts: map[byte]uint64{'C': 7, 'G': 7, 'T': 1},
			want:   [CodesPerBase]rankedBase{{'C', 0}, {'G', 1}, {'T', 2}, {'N', 3}},
			packed: 0x1b,
		},
		{
			ref:    'N',
			counts: map[byte]uint64{'A': 1, 'C': 2, 'G': 3, 'T': 4},
			want:   [CodesPerBase]rankedBase{{'A', 3}, {'C', 2}, {'G', 1}, {'T', 0}},
			packed: 0xe4,
		},
		{
			// Counts for the reference base itself and for non-alphabet bases
			// are ignored.
			ref:    'T',
			counts: map[byte]uint64{'T': 100, 'R': 50, 'N': 3, 'a': 9},
			want:   [CodesPerBase]rankedBase{{'A', 1}, {'C', 2}, {'G', 3}, {'N', 0}},
			packed: 0x6c,
		},
	}
	for _, test := range tests {
		got := rankSubstitutes(test.ref, freqRow(test.counts))
		expect.EQ(t, got, test.want, "ref %c counts %v", test.ref, test.counts)
		expect.EQ(t, packRanks(got), test.packed, "ref %c counts %v", test.ref, test.counts)
		expect.EQ(t, unpackRanks(test.ref, test.packed), test.want, "ref %c", test.ref)
	}
}

func TestRankSubstitutesLargeCounts(t *testing.T) {
	// Differences that don't fit in 32 bits must still order correctly.
	row := freqRow(map[byte]uint64{'C': 1 << 40, 'G': 1<<40 + 1<<33})
	got := rankSubstitutes('A', row)
	expect.EQ(t, got[0], rankedBase{'C', 1})
	expect.EQ(t, got[1], rankedBase{'G', 0})
}
