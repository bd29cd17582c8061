// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func writeFile(t *testing.T, path string, data []byte) {
	ctx := vcontext.Background()
	out, err := file.Create(ctx, path)
	assert.NoError(t, err)
	_, err = out.Writer(ctx).Write(data)
	assert.NoError(t, err)
	assert.NoError(t, out.Close(ctx))
}

func writeBAM(t *testing.T, path string, header *sam.Header, records []*sam.Record) {
	var buf bytes.Buffer
	w, err := bam.NewWriter(&buf, header, 1)
	assert.NoError(t, err)
	for _, r := range records {
		assert.NoError(t, w.Write(r))
	}
	assert.NoError(t, w.Close())
	writeFile(t, path, buf.Bytes())
}

func TestBuild(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)

	refPath := filepath.Join(tmpdir, "ref.fa")
	writeFile(t, refPath, []byte(">chr1\nACGTACGTAC\nGTACGTACGT\n"))

	chr1, err := sam.NewReference("chr1", "", "", 20, nil, nil)
	assert.NoError(t, err)
	header, err := sam.NewHeader(nil, []*sam.Reference{chr1})
	assert.NoError(t, err)
	newRecord := func(name string, pos int, seq string) *sam.Record {
		return &sam.Record{
			Name:    name,
			Ref:     chr1,
			Pos:     pos,
			MapQ:    60,
			Cigar:   []sam.CigarOp{sam.NewCigarOp(sam.CigarMatch, len(seq))},
			MatePos: -1,
			Seq:     sam.NewSeq([]byte(seq)),
			Qual:    []byte(strings.Repeat("\x1e", len(seq))),
		}
	}
	bamPath := filepath.Join(tmpdir, "reads.bam")
	writeBAM(t, bamPath, header, []*sam.Record{
		newRecord("r1", 0, "AGGT"), // C>G
		newRecord("r2", 4, "ACTT"), // G>T
		newRecord("r3", 8, "TCGT"), // A>T
	})

	var out bytes.Buffer
	opts := buildOpts{referencePath: refPath, sliceRecords: 2, parallelism: 1}
	assert.NoError(t, build(vcontext.Background(), bamPath, opts, &out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.EQ(t, len(lines), 3)
	expect.EQ(t, lines[0], "#SLICE\tRECORDS\tSUBSTITUTIONS\tMATRIX\tTABLE")

	slice0 := strings.Split(lines[1], "\t")
	expect.EQ(t, slice0[:4], []string{"0", "2", "2", "1b4b631b1b"})
	expect.HasSubstr(t, slice0[4], "C:GATN G:TACN")
	slice1 := strings.Split(lines[2], "\t")
	expect.EQ(t, slice1[:4], []string{"1", "1", "1", "631b1b1b1b"})
	expect.HasSubstr(t, slice1[4], "A:TCGN")
}

func TestBuildMissingReference(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	var out bytes.Buffer
	opts := buildOpts{referencePath: filepath.Join(tmpdir, "none.fa"), sliceRecords: 2, parallelism: 1}
	err := build(vcontext.Background(), filepath.Join(tmpdir, "none.bam"), opts, &out)
	expect.HasSubstr(t, err.Error(), "none.fa")
}

func TestDecode(t *testing.T) {
	var out bytes.Buffer
	assert.NoError(t, decode("4b1b631b1b", &out))
	expect.EQ(t, out.String(), strings.Join([]string{
		"#REF\tCODE0\tCODE1\tCODE2\tCODE3",
		"A\tG\tC\tT\tN",
		"C\tA\tG\tT\tN",
		"G\tT\tA\tC\tN",
		"T\tA\tC\tG\tN",
		"N\tA\tC\tG\tT",
		"a\tG\tC\tT\tN",
		"c\tA\tG\tT\tN",
		"g\tT\tA\tC\tN",
		"t\tA\tC\tG\tN",
		"n\tA\tC\tG\tT",
	}, "\n")+"\n")
}

func TestDecodeErrors(t *testing.T) {
	var out bytes.Buffer
	err := decode("zz", &out)
	expect.True(t, errors.Is(errors.Invalid, err))
	err = decode("1b1b", &out)
	expect.True(t, errors.Is(errors.Invalid, err))

	out.Reset()
	assert.NoError(t, decode("001b1b1b1b", &out))
	expect.HasSubstr(t, out.String(), "\nA\tN\t.\t.\t.\n")
	expect.HasSubstr(t, out.String(), "\na\tN\t.\t.\t.\n")
}
