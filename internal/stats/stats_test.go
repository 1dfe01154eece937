package stats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"figaro/internal/naming"
	"figaro/internal/quality"
)

func writeFastq(t *testing.T, path string, records [][2]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	for _, rec := range records {
		_, err := f.WriteString("@r\n" + rec[0] + "\n+\n" + rec[1] + "\n")
		require.NoError(t, err)
	}
}

func TestExpectedErrorMatrixLeanIsNonDecreasing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.fastq")
	writeFastq(t, path, [][2]string{{"ACGTACGTAC", "IIIIIIIIII"}})

	desc := naming.Descriptor{FilePath: path, Group: "a", SampleNumber: "1", Direction: 1}
	_, matrix, err := ExpectedErrorMatrixLean(desc, ExtractOptions{Subsample: 1, Scheme: quality.Sanger})
	require.NoError(t, err)
	require.Len(t, matrix, 1)
	for i := 1; i < len(matrix[0]); i++ {
		assert.GreaterOrEqual(t, matrix[0][i], matrix[0][i-1])
	}
}

func TestExpectedErrorMatrixWideAccumulatesError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.fastq")
	writeFastq(t, path, [][2]string{{"ACGTACGTAC", "!!!!!!!!!!"}})

	desc := naming.Descriptor{FilePath: path, Group: "a", SampleNumber: "1", Direction: 1}
	_, wide, err := ExpectedErrorMatrixWide(desc, ExtractOptions{Subsample: 1, Scheme: quality.Sanger})
	require.NoError(t, err)
	require.Len(t, wide, 1)
	assert.Greater(t, wide[0][len(wide[0])-1].Float32(), float32(0))
}

func TestFirstNArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.fastq")
	writeFastq(t, path, [][2]string{
		{"ACGTNCGTAC", "IIIIIIIIII"},
		{"ACGTACGTAC", "IIIIIIIIII"},
	})

	desc := naming.Descriptor{FilePath: path, Group: "a", SampleNumber: "1", Direction: 1}
	_, firstN, err := FirstNArray(desc, ExtractOptions{Subsample: 1, Scheme: quality.Sanger})
	require.NoError(t, err)
	require.Len(t, firstN, 2)
	assert.Equal(t, uint16(4), firstN[0])
	assert.Equal(t, uint16(10), firstN[1])
}

func TestFirstQ2Array(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.fastq")
	writeFastq(t, path, [][2]string{
		{"ACGTACGTAC", "IIII!IIIII"},
	})

	desc := naming.Descriptor{FilePath: path, Group: "a", SampleNumber: "1", Direction: 1}
	_, firstQ2, err := FirstQ2Array(desc, ExtractOptions{Subsample: 1, Scheme: quality.Sanger})
	require.NoError(t, err)
	require.Len(t, firstQ2, 1)
	assert.Equal(t, uint16(4), firstQ2[0])
}

func TestAggregateArrayOrdersBySampleOrder(t *testing.T) {
	descA := naming.Descriptor{Group: "a", SampleNumber: "1", Direction: 1}
	descB := naming.Descriptor{Group: "b", SampleNumber: "2", Direction: 1}
	sampleOrder := []naming.Descriptor{descA, descB}

	results := []ArrayResult[uint16]{
		{Descriptor: descB, Values: []uint16{7, 8}},
		{Descriptor: descA, Values: []uint16{1, 2, 3}},
	}

	out, err := AggregateArray(sampleOrder, results)
	require.NoError(t, err)
	assert.Equal(t, []uint16{1, 2, 3, 7, 8}, out)
}

func TestAggregateArrayMissingFirstSampleFails(t *testing.T) {
	descA := naming.Descriptor{Group: "a", SampleNumber: "1", Direction: 1}
	descB := naming.Descriptor{Group: "b", SampleNumber: "2", Direction: 1}
	sampleOrder := []naming.Descriptor{descA}

	_, err := AggregateArray(sampleOrder, []ArrayResult[uint16]{{Descriptor: descB, Values: []uint16{1}}})
	assert.Error(t, err)
}

func TestAggregateMatrixTransposes(t *testing.T) {
	descA := naming.Descriptor{Group: "a", SampleNumber: "1", Direction: 1}
	sampleOrder := []naming.Descriptor{descA}
	results := []MatrixResult[uint8]{
		{Descriptor: descA, Matrix: [][]uint8{{1, 2, 3}, {4, 5, 6}}},
	}

	out, err := AggregateMatrix(sampleOrder, results)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, []uint8{1, 4}, out[0])
	assert.Equal(t, []uint8{3, 6}, out[2])
}
