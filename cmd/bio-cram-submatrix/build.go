// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/cramsub/encoding/cram/readfeature"
	"github.com/grailbio/cramsub/encoding/cram/submatrix"
	"github.com/grailbio/cramsub/encoding/fasta"
	"github.com/grailbio/hts/bam"
)

type buildOpts struct {
	referencePath string
	sliceRecords  int
	parallelism   int
}

// sliceStats summarizes one slice.
type sliceStats struct {
	index         int
	records       int
	substitutions int
	matrix        *submatrix.Matrix
}

// buildSlice builds the matrix for one slice, codes the slice's
// substitutions with it, and checks that the packed matrix decodes them back.
func buildSlice(index int, records []*readfeature.Record) (sliceStats, error) {
	stats := sliceStats{index: index, records: len(records)}
	m, err := submatrix.New(readfeature.Observations(records))
	if err != nil {
		return stats, err
	}
	if err := readfeature.EncodeSubstitutions(records, m); err != nil {
		return stats, err
	}
	decoder, err := submatrix.FromBytes(m.EncodedBytes())
	if err != nil {
		return stats, err
	}
	for _, r := range records {
		for _, f := range r.Features {
			s, ok := f.(*readfeature.Substitution)
			if !ok {
				continue
			}
			stats.substitutions++
			base, err := decoder.Base(s.RefBase, s.Code)
			if err != nil {
				return stats, err
			}
			if base != s.Base {
				return stats, errors.E(errors.Integrity,
					fmt.Sprintf("slice %d: read %s position %d decoded to %c, want %c", index, r.Name, s.Pos, base, s.Base))
			}
		}
	}
	stats.matrix = m
	return stats, nil
}

func writeSliceHeader(w *tsv.Writer) error {
	w.WriteString("#SLICE\tRECORDS\tSUBSTITUTIONS\tMATRIX\tTABLE")
	return w.EndLine()
}

func writeSlice(w *tsv.Writer, stats sliceStats) error {
	w.WriteUint32(uint32(stats.index))
	w.WriteUint32(uint32(stats.records))
	w.WriteUint32(uint32(stats.substitutions))
	w.WriteString(hex.EncodeToString(stats.matrix.EncodedBytes()))
	w.WriteString(strings.TrimSpace(strings.Replace(stats.matrix.String(), "\t", " ", -1)))
	return w.EndLine()
}

// build reads the BAM file at bamPath and writes one matrix row per slice to
// out.
func build(ctx context.Context, bamPath string, opts buildOpts, out io.Writer) (err error) {
	ref, err := fasta.Open(ctx, opts.referencePath)
	if err != nil {
		return err
	}
	in, err := file.Open(ctx, bamPath)
	if err != nil {
		return err
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	reader, err := bam.NewReader(in.Reader(ctx), opts.parallelism)
	if err != nil {
		return errors.E(err, "read BAM header:", bamPath)
	}
	defer func() {
		if e := reader.Close(); e != nil && err == nil {
			err = e
		}
	}()

	w := tsv.NewWriter(out)
	if err = writeSliceHeader(w); err != nil {
		return err
	}
	var (
		records  []*readfeature.Record
		nSlices  int
		nRecords int
	)
	flush := func() error {
		stats, err := buildSlice(nSlices, records)
		if err != nil {
			return err
		}
		log.Debug.Printf("slice %d: %d records, %d substitutions, matrix %v", nSlices, stats.records, stats.substitutions, stats.matrix)
		nSlices++
		records = records[:0]
		return writeSlice(w, stats)
	}
	for {
		samr, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.E(err, "read BAM record:", bamPath)
		}
		rec, err := readfeature.FromSAM(samr, ref)
		if err != nil {
			return err
		}
		records = append(records, rec)
		nRecords++
		if len(records) == opts.sliceRecords {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if len(records) > 0 {
		if err = flush(); err != nil {
			return err
		}
	}
	log.Printf("%s: %d records in %d slices", bamPath, nRecords, nSlices)
	return w.Flush()
}
