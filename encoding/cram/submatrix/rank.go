// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package submatrix

import (
	"sort"
)

// rankedBase is a substitute base together with its substitution code.
type rankedBase struct {
	base byte
	rank byte
}

// rankSubstitutes ranks the substitutes of refBase by descending frequency,
// breaking ties by position in Bases.  The result is in Bases order (skipping
// refBase), not in rank order.
func rankSubstitutes(refBase byte, freqs *[SymbolSpace]uint64) (ranked [CodesPerBase]rankedBase) {
	type candidate struct {
		base  byte
		index int // position in Bases
		slot  int // position in the result
		freq  uint64
	}
	var byFreq [CodesPerBase]candidate
	n := 0
	for i, b := range Bases {
		if b == refBase {
			continue
		}
		byFreq[n] = candidate{base: b, index: i, slot: n, freq: freqs[b]}
		n++
	}
	sort.Slice(byFreq[:], func(i, j int) bool {
		if byFreq[i].freq != byFreq[j].freq {
			return byFreq[i].freq > byFreq[j].freq
		}
		return byFreq[i].index < byFreq[j].index
	})
	for rank, c := range byFreq {
		ranked[c.slot] = rankedBase{base: c.base, rank: byte(rank)}
	}
	return
}

// packRanks packs four 2-bit codes into a byte, first entry in the most
// significant bits.
func packRanks(ranked [CodesPerBase]rankedBase) (packed byte) {
	for _, r := range ranked {
		packed = packed<<2 | r.rank&3
	}
	return
}

// unpackRanks returns the code of each substitute of refBase stored in
// packed, in Bases order.
func unpackRanks(refBase byte, packed byte) (ranked [CodesPerBase]rankedBase) {
	n := 0
	for _, b := range Bases {
		if b == refBase {
			continue
		}
		shift := uint(2 * (CodesPerBase - 1 - n))
		ranked[n] = rankedBase{base: b, rank: (packed >> shift) & 3}
		n++
	}
	return
}
