package naming

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoNonsenseStandard(t *testing.T) {
	std := noNonsenseStandard{}

	d, err := std.Parse("/data/sampleA_R1.fastq.gz")
	require.NoError(t, err)
	assert.Equal(t, "sampleA", d.Group)
	assert.Equal(t, "sampleA", d.SampleNumber)
	assert.Equal(t, 1, d.Direction)

	d2, err := std.Parse("/data/sampleA_R2.fastq.gz")
	require.NoError(t, err)
	assert.True(t, d.SameSample(d2))
	assert.NotEqual(t, d.Direction, d2.Direction)
}

func TestIlluminaStandard(t *testing.T) {
	std := illuminaStandard{}
	d, err := std.Parse("/data/grp_S3_L001_R1_001.fastq.gz")
	require.NoError(t, err)
	assert.Equal(t, "grp", d.Group)
	assert.Equal(t, "3", d.SampleNumber)
	assert.Equal(t, 1, d.Direction)
}

func TestZymoStandard(t *testing.T) {
	std := zymoStandard{}
	d, err := std.Parse("/data/groupA_sample1_R1.fastq.gz")
	require.NoError(t, err)
	assert.Equal(t, "groupA", d.Group)
	assert.Equal(t, "sample1", d.SampleNumber)
	assert.Equal(t, 1, d.Direction)
}

func TestKErikssonStandard(t *testing.T) {
	std := kErikssonStandard{}
	d, err := std.Parse("/data/groupA.sample1_R2.fastq.gz")
	require.NoError(t, err)
	assert.Equal(t, "groupA", d.Group)
	assert.Equal(t, "sample1", d.SampleNumber)
	assert.Equal(t, 2, d.Direction)
}

func TestFVieiraStandard(t *testing.T) {
	std := fVieiraStandard{}
	d, err := std.Parse("/data/sample1_R1.fastq.gz")
	require.NoError(t, err)
	assert.Equal(t, "default", d.Group)
	assert.Equal(t, "sample1", d.SampleNumber)
	assert.Equal(t, 1, d.Direction)
}

func TestYZhangStandard(t *testing.T) {
	std := yZhangStandard{}
	d, err := std.Parse("/data/sample1_16S_R1.fastq.gz")
	require.NoError(t, err)
	assert.Equal(t, "default", d.Group)
	assert.Equal(t, "sample1", d.SampleNumber)
	assert.Equal(t, 1, d.Direction)
}

func TestLoadUnknownAlias(t *testing.T) {
	_, err := Load("not-a-real-convention")
	assert.Error(t, err)
}

func TestLoadKnownAliases(t *testing.T) {
	for _, alias := range []string{"zymo", "Illumina", "KERIKSSON", "nononsense", "fvieira", "yzhang", "zymoServicesNamingStandard"} {
		_, err := Load(alias)
		assert.NoError(t, err, alias)
	}
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("@r\nACGT\n+\nIIII\n"), 0644))
}

func TestEnumeratePairsAndReportsUnpaired(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "sampleA_R1.fastq.gz")
	touch(t, dir, "sampleA_R2.fastq.gz")
	touch(t, dir, "sampleB_R1.fastq.gz")
	touch(t, dir, "notes.txt")

	table, err := Enumerate(dir, noNonsenseStandard{})
	require.NoError(t, err)
	assert.Len(t, table.Forward, 2)
	assert.Len(t, table.Pairs, 1)
	require.Len(t, table.Unpaired, 1)
	assert.Equal(t, "sampleB", table.Unpaired[0].SampleNumber)
}
