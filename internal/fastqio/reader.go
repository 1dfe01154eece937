package fastqio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	pgzip "github.com/klauspost/pgzip"
	"go.uber.org/zap"

	"figaro/internal/ferrors"
	"figaro/internal/quality"
)

// defaultValidationDepth bounds the encoding-detection pre-scan, matching
// findQualityScoreEncoding's default lineLimit=100.
const defaultValidationDepth = 100

// Options configures a Reader. Subsample and trim apply after a record is
// fully read; encoding detection, if Scheme is the zero value, runs once up
// front and is cached for the life of the Reader.
type Options struct {
	Subsample       int
	LeftTrim        int
	RightTrim       int
	FullValidation  bool
	Scheme          *quality.Scheme
	ValidationDepth int
}

func (o Options) normalized() Options {
	if o.Subsample < 1 {
		o.Subsample = 1
	}
	if o.ValidationDepth <= 0 {
		o.ValidationDepth = defaultValidationDepth
	}
	return o
}

// Reader streams Records from a single FASTQ file, plain or gzip-compressed.
// It owns exactly one file handle and is not restartable, matching the
// coroutine-shaped iteration the design notes replace with an explicit
// close.
type Reader struct {
	path    string
	opts    Options
	logger  *zap.Logger
	file    *os.File
	gz      *pgzip.Reader
	scanner *bufio.Scanner
	scheme  quality.Scheme
	ordinal int64
}

func openRaw(path string) (*os.File, *pgzip.Reader, *bufio.Scanner, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil, &ferrors.InputNotFound{Path: path, Err: err}
		}
		return nil, nil, nil, err
	}

	var header [2]byte
	n, _ := io.ReadFull(f, header[:])
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, nil, nil, err
	}

	if n == 2 && header == gzipMagic {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, nil, &ferrors.FormatError{Path: path, Detail: "not a valid gzip stream despite magic bytes"}
		}
		return f, gz, bufio.NewScanner(gz), nil
	}
	return f, nil, bufio.NewScanner(f), nil
}

// New opens path and, if opts.Scheme is nil, runs the elimination-based
// encoding pre-scan before returning a ready-to-iterate Reader.
func New(path string, opts Options, logger *zap.Logger) (*Reader, error) {
	opts = opts.normalized()

	if opts.Scheme == nil {
		scheme, err := DetectEncoding(path, opts.ValidationDepth)
		if err != nil {
			return nil, err
		}
		opts.Scheme = &scheme
	}

	f, gz, scanner := (*os.File)(nil), (*pgzip.Reader)(nil), (*bufio.Scanner)(nil)
	var err error
	f, gz, scanner, err = openRaw(path)
	if err != nil {
		return nil, err
	}

	return &Reader{
		path:    path,
		opts:    opts,
		logger:  logger,
		file:    f,
		gz:      gz,
		scanner: scanner,
		scheme:  *opts.Scheme,
	}, nil
}

// Scheme returns the quality-encoding scheme detected (or supplied) for this
// reader.
func (r *Reader) Scheme() quality.Scheme { return r.scheme }

func (r *Reader) read4Lines() (metadata, sequence, plus, qual string, ok bool, err error) {
	lines := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return "", "", "", "", false, err
			}
			if len(lines) == 0 {
				return "", "", "", "", false, nil
			}
			return "", "", "", "", false, &ferrors.FormatError{Path: r.path, Detail: "truncated record: file is not a multiple of 4 lines"}
		}
		lines = append(lines, r.scanner.Text())
	}
	return lines[0], lines[1], lines[2], lines[3], true, nil
}

// Next returns the next Record after subsampling and trimming, or ok=false
// at end of stream. A non-nil error always carries ok=false.
func (r *Reader) Next() (Record, bool, error) {
	for {
		metadata, sequence, _, qual, ok, err := r.read4Lines()
		if err != nil {
			return Record{}, false, err
		}
		if !ok {
			return Record{}, false, nil
		}
		if len(sequence) != len(qual) {
			return Record{}, false, &ferrors.FormatError{Path: r.path, Detail: fmt.Sprintf("sequence/quality length mismatch: %d vs %d", len(sequence), len(qual))}
		}

		// The metadata parser only runs under full validation; outside of it,
		// non-Illumina-style headers (and malformed ones) are tolerated.
		if r.opts.FullValidation {
			md, mdErr := ParseMetadata(r.path, strings.TrimPrefix(metadata, "@"), true)
			if mdErr != nil {
				return Record{}, false, mdErr
			}
			if md.ControlBitsOdd && r.logger != nil {
				r.logger.Warn("odd controlBits in metadata line", zap.String("path", r.path), zap.Int64("record", r.ordinal))
			}
		}

		current := r.ordinal
		r.ordinal++
		if current%int64(r.opts.Subsample) != 0 {
			continue
		}

		sequence = normalizeSequence(sequence)
		seq, q := trim(sequence, qual, r.opts.LeftTrim, r.opts.RightTrim)
		return Record{Metadata: metadata, Sequence: seq, Quality: q}, true, nil
	}
}

func normalizeSequence(seq string) string {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		c := seq[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c == '.' {
			c = 'N'
		}
		out[i] = c
	}
	return string(out)
}

// trim slices sequence/quality by [leftTrim : len-rightTrimMagnitude], where
// rightTrim is supplied as <= 0 (0 = no trim), matching the reader contract
// in §4.1.
func trim(sequence, qual string, leftTrim, rightTrim int) (string, string) {
	end := len(sequence)
	if rightTrim < 0 {
		end += rightTrim
	}
	if end < leftTrim {
		end = leftTrim
	}
	if leftTrim > len(sequence) {
		leftTrim = len(sequence)
	}
	return sequence[leftTrim:end], qual[leftTrim:end]
}

// Close releases the underlying file handle, and the gzip reader if one was
// opened.
func (r *Reader) Close() error {
	if r.gz != nil {
		r.gz.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// DetectEncoding runs the elimination algorithm from §3 over up to
// lineLimit records of path's quality strings, stopping early once at most
// one candidate remains. It returns the first surviving scheme in priority
// order (also when several survive at lineLimit), or an
// *ferrors.EncodingError if none survives.
func DetectEncoding(path string, lineLimit int) (quality.Scheme, error) {
	f, gz, scanner, err := openRaw(path)
	if err != nil {
		return quality.Scheme{}, err
	}
	defer func() {
		if gz != nil {
			gz.Close()
		}
		f.Close()
	}()

	candidates := quality.CandidateSchemes()
	inspected := 0
	for inspected < lineLimit {
		lines := 0
		var qualLine string
		for lines < 4 {
			if !scanner.Scan() {
				if scanErr := scanner.Err(); scanErr != nil {
					return quality.Scheme{}, scanErr
				}
				if lines == 0 {
					goto done
				}
				return quality.Scheme{}, &ferrors.FormatError{Path: path, Detail: "truncated record during encoding detection"}
			}
			if lines == 3 {
				qualLine = scanner.Text()
			} else {
				_ = scanner.Text()
			}
			lines++
		}
		inspected++

		candidates = eliminate(candidates, qualLine)
		if len(candidates) <= 1 {
			break
		}
	}
done:
	if len(candidates) == 0 {
		return quality.Scheme{}, &ferrors.EncodingError{Path: path}
	}
	return candidates[0], nil
}

func eliminate(candidates []quality.Scheme, qualLine string) []quality.Scheme {
	survivors := candidates[:0:0]
	for _, c := range candidates {
		ok := true
		for i := 0; i < len(qualLine); i++ {
			if !c.InSet(qualLine[i]) {
				ok = false
				break
			}
		}
		if ok {
			survivors = append(survivors, c)
		}
	}
	return survivors
}
