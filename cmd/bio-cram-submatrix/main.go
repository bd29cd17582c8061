// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

// See doc.go for documentation.

import (
	"fmt"
	"os"
	"runtime"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"v.io/x/lib/cmdline"
)

func newCmdBuild() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "build",
		Short:    "Build CRAM substitution matrices from the reads of a BAM file",
		ArgsName: "bampath",
	}
	opts := buildOpts{}
	cmd.Flags.StringVar(&opts.referencePath, "reference", "", "Reference FASTA path (optionally gzipped); required")
	cmd.Flags.IntVar(&opts.sliceRecords, "slice-records", 10000, "Number of records sharing one substitution matrix, like a CRAM slice")
	cmd.Flags.IntVar(&opts.parallelism, "parallelism", runtime.NumCPU(), "Number of BAM decompression goroutines")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("build takes one BAM path, but got %v", argv)
		}
		if opts.referencePath == "" {
			return fmt.Errorf("build: -reference is required")
		}
		if opts.sliceRecords <= 0 {
			return fmt.Errorf("build: -slice-records must be positive, got %d", opts.sliceRecords)
		}
		return build(vcontext.Background(), argv[0], opts, os.Stdout)
	})
	return cmd
}

func newCmdDecode() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "decode",
		Short:    "Print the read base of every (reference base, code) pair of a packed matrix",
		ArgsName: "hexmatrix",
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("decode takes one hex-encoded matrix, but got %v", argv)
		}
		return decode(argv[0], os.Stdout)
	})
	return cmd
}

func main() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-cram-submatrix",
			Short:    "Tools for CRAM substitution matrices",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdBuild(),
				newCmdDecode(),
			},
		})
}
