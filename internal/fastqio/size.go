package fastqio

import (
	"os"
	"path/filepath"
	"strings"
)

// gzipSizeMultiplier estimates uncompressed size from on-disk gzip size,
// matching getEstimatedFastqFileSizeSumFromList's fixed 3.5x factor.
const gzipSizeMultiplier = 3.5

var fastqExtensions = []string{".fastq.gz", ".fq.gz", ".fastq", ".fq"}

func isFastqFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range fastqExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// EstimateDirectorySize sums file sizes under dir for files matching the
// recognized FASTQ extensions, scaling gzip-compressed files by
// gzipSizeMultiplier as an uncompressed-size estimate, matching
// getEstimatedFastqSizeSumFromDirectory.
func EstimateDirectorySize(dir string) (float64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, entry := range entries {
		if entry.IsDir() || !isFastqFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			return 0, err
		}
		size := float64(info.Size())
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".gz") {
			size *= gzipSizeMultiplier
		}
		total += size
	}
	return total, nil
}
