// Package fasta loads FASTA reference sequences for CRAM substitution
// extraction.  See http://www.htslib.org/doc/faidx.html.  Briefly, FASTA
// files consist of a number of named sequences that may be interrupted by
// newlines.  For example:
//
// >chr7
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// Sequence names are the stretch of characters after '>' up to the first
// space; '>chr1 A viral sequence' names 'chr1'.
//
// Bases are stored upper case, as CRAM compares read bases against the upper
// case reference.
package fasta

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

const (
	maxLineSize = 1024 * 1024 * 300 // 300 MB
)

// Fasta represents FASTA-formatted data, consisting of a set of named
// sequences.
type Fasta interface {
	// Get returns the bases of the given sequence in the 0-based half-open
	// interval [start, end).  The result must not be modified.  Get is
	// thread-safe.
	Get(seqName string, start, end uint64) ([]byte, error)

	// Len returns the length of the given sequence.
	Len(seqName string) (uint64, error)

	// SeqNames returns the names of all sequences, in the order of appearance in
	// the FASTA file.
	SeqNames() []string
}

type fasta struct {
	seqs     map[string][]byte
	seqNames []string
}

// upper converts ASCII lower case letters in b to upper case, in place.
func upper(b []byte) {
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
}

// New reads all the FASTA data from r into memory.
func New(r io.Reader) (Fasta, error) {
	f := &fasta{seqs: make(map[string][]byte)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineSize)
	var (
		seqName string
		seq     []byte
		started bool
	)
	finish := func() error {
		if !started {
			return nil
		}
		if _, ok := f.seqs[seqName]; ok {
			return errors.Errorf("duplicate FASTA sequence name: %s", seqName)
		}
		upper(seq)
		f.seqs[seqName] = seq
		f.seqNames = append(f.seqNames, seqName)
		return nil
	}
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' { // Start a new sequence.
			if err := finish(); err != nil {
				return nil, err
			}
			seqName = strings.Split(line[1:], " ")[0]
			if seqName == "" {
				return nil, errors.Errorf("malformed FASTA file: empty sequence name")
			}
			seq = nil
			started = true
			continue
		}
		if !started {
			return nil, errors.Errorf("malformed FASTA file: bases before the first sequence name")
		}
		seq = append(seq, line...)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "couldn't read FASTA data")
	}
	if err := finish(); err != nil {
		return nil, err
	}
	return f, nil
}

// Open loads the FASTA file at path, which may be any path supported by
// grailbio/base/file.  Paths ending in ".gz" are decompressed.
func Open(ctx context.Context, path string) (fa Fasta, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	var r io.Reader = in.Reader(ctx)
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrapf(err, "gunzip %s", path)
		}
		defer gz.Close() // nolint: errcheck
		r = gz
	}
	if fa, err = New(r); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return fa, nil
}

// Get implements Fasta.Get().
func (f *fasta) Get(seqName string, start, end uint64) ([]byte, error) {
	s, ok := f.seqs[seqName]
	if !ok {
		return nil, errors.Errorf("sequence not found: %s", seqName)
	}
	if end <= start {
		return nil, errors.Errorf("start must be less than end")
	}
	if end > uint64(len(s)) {
		return nil, errors.Errorf("invalid query range %d - %d for sequence %s with length %d",
			start, end, seqName, len(s))
	}
	return s[start:end:end], nil
}

// Len implements Fasta.Len().
func (f *fasta) Len(seqName string) (uint64, error) {
	s, ok := f.seqs[seqName]
	if !ok {
		return 0, errors.Errorf("sequence not found: %s", seqName)
	}
	return uint64(len(s)), nil
}

// SeqNames implements Fasta.SeqNames().
func (f *fasta) SeqNames() []string {
	return f.seqNames
}
