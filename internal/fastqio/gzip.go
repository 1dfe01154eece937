package fastqio

import (
	"io"
	"os"

	pgzip "github.com/klauspost/pgzip"
)

// gzipMagic is the two-byte gzip member header figaro/gzipIdentifier.py
// sniffs for before trusting a file's extension.
var gzipMagic = [2]byte{0x1f, 0x8b}

// IsGzipped reports whether path begins with the gzip magic bytes and can
// actually be opened as a gzip stream, mirroring gzipIdentifier.isGzipped's
// double check (magic bytes, then a real decompression attempt).
func IsGzipped(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	var header [2]byte
	n, err := io.ReadFull(f, header[:])
	if err != nil || n < 2 {
		return false, nil
	}
	if header != gzipMagic {
		return false, nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return false, err
	}
	gz, err := pgzip.NewReader(f)
	if err != nil {
		return false, nil
	}
	defer gz.Close()

	buf := make([]byte, 10)
	if _, err := gz.Read(buf); err != nil && err != io.EOF {
		return false, nil
	}
	return true, nil
}
