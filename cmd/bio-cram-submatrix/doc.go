/*Command bio-cram-submatrix computes and inspects CRAM substitution
  matrices.

  "build" reads a coordinate-sorted BAM file and its reference, splits the
  records into slices of -slice-records reads, and builds one substitution
  matrix per slice from the reads' mismatches against the reference.  Each
  slice's substitutions are coded with the matrix and decoded again from its
  packed bytes as a consistency check.  Output is a TSV with one row per
  slice: slice index, records, substitutions, the packed matrix in hex, and
  the read base for codes 0..3 of each reference base.

  Usage: bio-cram-submatrix build -reference ref.fa.gz foo.bam > foo.submatrix.tsv

  "decode" prints the read base for each (reference base, code) pair of a
  hex-encoded packed matrix, e.g. one copied from a CRAM compression header.

  Usage: bio-cram-submatrix decode 4b1b631b1b
*/
package main
