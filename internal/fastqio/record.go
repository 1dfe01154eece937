// Package fastqio streams FASTQ records from plain or gzip-compressed files,
// ported from figaro/fastqHandler.py and adapted to the teacher's
// bufio.Scanner-over-4-line-records idiom in scramTrimmer.go.
package fastqio

// Record is one FASTQ entry: a metadata line, a sequence over {A,C,G,T,N},
// and a same-length quality string.
type Record struct {
	Metadata string
	Sequence string
	Quality  string
}
