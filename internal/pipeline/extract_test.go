package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"figaro/internal/naming"
	"figaro/internal/quality"
)

// TestBuildLeanMatrixExcludesPrimerBasesFromExpectedError pins the fix for
// buildLeanMatrix folding primerLength into the slice offset instead of
// trimming it off before accumulation: a read whose primer bases are very
// low quality must not inflate the cumulative expected error reported at
// post-primer positions once leftTrim is wired through.
func TestBuildLeanMatrixExcludesPrimerBasesFromExpectedError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sampleA_R1.fastq")
	f, err := os.Create(path)
	require.NoError(t, err)
	// 5 primer bases at the worst possible quality, followed by 10 perfect
	// quality bases. If the primer's error leaks into the matrix, the
	// cumulative error at every downstream position is inflated.
	seq := "ACGTAACGTACGTAC"
	qual := "!!!!!IIIIIIIIII"
	fmt.Fprintf(f, "@read0\n%s\n+\n%s\n", seq, qual)
	require.NoError(t, f.Close())

	desc := naming.Descriptor{FilePath: path, Group: "sampleA", SampleNumber: "sampleA", Direction: 1}
	sampleOrder := []naming.Descriptor{desc}

	withPrimerTrim, err := buildLeanMatrix(sampleOrder, sampleOrder, quality.Sanger, 5, 0, 1, 1)
	require.NoError(t, err)

	withoutAnyTrim, err := buildLeanMatrix(sampleOrder, sampleOrder, quality.Sanger, 0, 0, 1, 1)
	require.NoError(t, err)

	require.NotEmpty(t, withPrimerTrim)
	require.NotEmpty(t, withoutAnyTrim)

	// withoutAnyTrim's matrix still carries the primer's error in its first
	// rows; row 0 corresponds to post-primer position 0 under leftTrim=5, and
	// to the primer's own first base under leftTrim=0, so the two must not
	// agree when the primer is genuinely worse quality than the trimmed body.
	assert.Less(t, int(withPrimerTrim[0][0]), int(withoutAnyTrim[0][0]))
}

func writeIlluminaSample(t *testing.T, dir, name string, n, seqLen, direction int) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	for i := 0; i < n; i++ {
		seq := make([]byte, seqLen)
		qual := make([]byte, seqLen)
		for j := range seq {
			seq[j] = "ACGT"[(i+j)%4]
			qual[j] = 'I'
		}
		fmt.Fprintf(f, "@EAS139:136:FC706VJ:2:2104:15343:%d %d:N:18:ATCACG\n%s\n+\n%s\n", i, direction, seq, qual)
	}
}

func TestRunFullValidationDetectsPairedDesync(t *testing.T) {
	dir := t.TempDir()
	writeIlluminaSample(t, dir, "sampleA_R1.fastq", 20, 10, 1)
	// Fewer reverse reads than forward: a desynchronized mate pair.
	writeIlluminaSample(t, dir, "sampleA_R2.fastq", 15, 10, 2)

	opts := Options{
		InputDir:              dir,
		MinimumCombinedLength: 12,
		Subsample:             1,
		Percentile:            83,
		NamingStandard:        "nononsense",
		Variant:               Lite,
		FullValidation:        true,
	}

	_, err := Run(opts, nil)
	assert.Error(t, err)
}

func TestRunFullValidationAcceptsSynchronizedPairs(t *testing.T) {
	dir := t.TempDir()
	writeIlluminaSample(t, dir, "sampleA_R1.fastq", 20, 10, 1)
	writeIlluminaSample(t, dir, "sampleA_R2.fastq", 20, 10, 2)

	opts := Options{
		InputDir:              dir,
		MinimumCombinedLength: 12,
		Subsample:             1,
		Percentile:            83,
		NamingStandard:        "nononsense",
		Variant:               Lite,
		FullValidation:        true,
	}

	_, err := Run(opts, nil)
	assert.NoError(t, err)
}
