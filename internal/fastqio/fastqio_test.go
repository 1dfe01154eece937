package fastqio

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"figaro/internal/quality"
)

func writeFastq(t *testing.T, path string, records []Record) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	for _, r := range records {
		_, err := f.WriteString(r.Metadata + "\n" + r.Sequence + "\n+\n" + r.Quality + "\n")
		require.NoError(t, err)
	}
}

func writeGzipFastq(t *testing.T, path string, records []Record) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	gz := gzip.NewWriter(f)
	defer gz.Close()
	for _, r := range records {
		_, err := gz.Write([]byte(r.Metadata + "\n" + r.Sequence + "\n+\n" + r.Quality + "\n"))
		require.NoError(t, err)
	}
}

func sampleRecords() []Record {
	return []Record{
		{Metadata: "@read1", Sequence: "ACGTACGTAC", Quality: "IIIIIIIIII"},
		{Metadata: "@read2", Sequence: "acgtnACGTA", Quality: "IIIIIIIIII"},
		{Metadata: "@read3", Sequence: "ACGTACGTAC", Quality: "!!!!!!!!!!"},
	}
}

func TestIsGzipped(t *testing.T) {
	dir := t.TempDir()

	plainPath := filepath.Join(dir, "plain.fastq")
	writeFastq(t, plainPath, sampleRecords())
	gz, err := IsGzipped(plainPath)
	require.NoError(t, err)
	assert.False(t, gz)

	gzPath := filepath.Join(dir, "gzipped.fastq.gz")
	writeGzipFastq(t, gzPath, sampleRecords())
	gz, err = IsGzipped(gzPath)
	require.NoError(t, err)
	assert.True(t, gz)
}

func TestReaderBasicIteration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reads.fastq")
	writeFastq(t, path, sampleRecords())

	scheme := quality.Sanger
	r, err := New(path, Options{Subsample: 1, Scheme: &scheme}, nil)
	require.NoError(t, err)
	defer r.Close()

	var got []Record
	for {
		rec, ok, err := r.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, rec)
	}
	require.Len(t, got, 3)
	assert.Equal(t, "ACGTNACGTA", got[1].Sequence)
}

func TestReaderSubsample(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reads.fastq")
	writeFastq(t, path, sampleRecords())

	scheme := quality.Sanger
	r, err := New(path, Options{Subsample: 2, Scheme: &scheme}, nil)
	require.NoError(t, err)
	defer r.Close()

	var got []Record
	for {
		rec, ok, err := r.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, rec)
	}
	require.Len(t, got, 2)
	assert.Equal(t, "@read1", got[0].Metadata)
	assert.Equal(t, "@read3", got[1].Metadata)
}

func TestReaderTrim(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reads.fastq")
	writeFastq(t, path, sampleRecords())

	scheme := quality.Sanger
	r, err := New(path, Options{Subsample: 1, LeftTrim: 2, RightTrim: -3, Scheme: &scheme}, nil)
	require.NoError(t, err)
	defer r.Close()

	rec, ok, err := r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "GTACG", rec.Sequence)
	assert.Len(t, rec.Quality, len(rec.Sequence))
}

func TestReaderTruncatedFileIsFormatError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.fastq")
	require.NoError(t, os.WriteFile(path, []byte("@only\nACGT\n+\n"), 0644))

	scheme := quality.Sanger
	r, err := New(path, Options{Subsample: 1, Scheme: &scheme}, nil)
	require.NoError(t, err)
	defer r.Close()

	_, _, err = r.Next()
	assert.Error(t, err)
}

func TestPairedReaderDesyncDetection(t *testing.T) {
	dir := t.TempDir()
	fwdPath := filepath.Join(dir, "a_R1.fastq")
	revPath := filepath.Join(dir, "a_R2.fastq")
	writeFastq(t, fwdPath, sampleRecords())
	writeFastq(t, revPath, sampleRecords()[:2])

	scheme := quality.Sanger
	pr, err := NewPairedReader(fwdPath, revPath, Options{Subsample: 1, Scheme: &scheme}, nil)
	require.NoError(t, err)
	defer pr.Close()

	_, _, ok, err := pr.Next()
	require.NoError(t, err)
	require.True(t, ok)
	_, _, ok, err = pr.Next()
	require.NoError(t, err)
	require.True(t, ok)
	_, _, _, err = pr.Next()
	assert.Error(t, err)
}

func TestEstimateDirectorySize(t *testing.T) {
	dir := t.TempDir()
	writeFastq(t, filepath.Join(dir, "a.fastq"), sampleRecords())
	writeGzipFastq(t, filepath.Join(dir, "b.fastq.gz"), sampleRecords())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("x"), 0644))

	total, err := EstimateDirectorySize(dir)
	require.NoError(t, err)
	assert.Greater(t, total, 0.0)
}

func TestParseMetadataValid(t *testing.T) {
	line := "@EAS139:136:FC706VJ:2:2104:15343:197393 1:Y:18:ATCACG"
	md, err := ParseMetadata("path", line, false)
	require.NoError(t, err)
	assert.Equal(t, "EAS139", md.InstrumentName)
	assert.Equal(t, 1, md.Direction)
	assert.True(t, md.Filtered)
	assert.False(t, md.ControlBitsOdd)
}

func TestParseMetadataOddControlBitsFailsUnderFullValidation(t *testing.T) {
	line := "@EAS139:136:FC706VJ:2:2104:15343:197393 1:Y:17:ATCACG"
	md, err := ParseMetadata("path", line, false)
	require.NoError(t, err)
	assert.True(t, md.ControlBitsOdd)

	_, err = ParseMetadata("path", line, true)
	assert.Error(t, err)
}

func TestParseMetadataMalformed(t *testing.T) {
	_, err := ParseMetadata("path", "no-space-here", false)
	assert.Error(t, err)
}

func TestReaderTolerateNonIlluminaHeadersByDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reads.fastq")
	writeFastq(t, path, sampleRecords())

	scheme := quality.Sanger
	r, err := New(path, Options{Subsample: 1, Scheme: &scheme}, nil)
	require.NoError(t, err)
	defer r.Close()

	_, ok, err := r.Next()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReaderFullValidationRejectsNonIlluminaHeaders(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reads.fastq")
	writeFastq(t, path, sampleRecords())

	scheme := quality.Sanger
	r, err := New(path, Options{Subsample: 1, Scheme: &scheme, FullValidation: true}, nil)
	require.NoError(t, err)
	defer r.Close()

	_, _, err = r.Next()
	assert.Error(t, err)
}

func TestReaderFullValidationAcceptsWellFormedIlluminaHeaders(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reads.fastq")
	writeFastq(t, path, []Record{
		{Metadata: "@EAS139:136:FC706VJ:2:2104:15343:197393 1:N:18:ATCACG", Sequence: "ACGTACGTAC", Quality: "IIIIIIIIII"},
	})

	scheme := quality.Sanger
	r, err := New(path, Options{Subsample: 1, Scheme: &scheme, FullValidation: true}, nil)
	require.NoError(t, err)
	defer r.Close()

	_, ok, err := r.Next()
	require.NoError(t, err)
	assert.True(t, ok)
}
