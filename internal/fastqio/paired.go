package fastqio

import (
	"go.uber.org/zap"

	"figaro/internal/ferrors"
)

// PairedReader reads two mate files in lockstep and reports desynchronization
// when one file runs out of reads before the other, matching
// FastqFilePair.getNextReadPair's xor check on exhaustion.
type PairedReader struct {
	forward, reverse *Reader
	fullValidation   bool
	logger           *zap.Logger
}

// NewPairedReader opens both mates with identical Options.
func NewPairedReader(forwardPath, reversePath string, opts Options, logger *zap.Logger) (*PairedReader, error) {
	fwd, err := New(forwardPath, opts, logger)
	if err != nil {
		return nil, err
	}
	rev, err := New(reversePath, opts, logger)
	if err != nil {
		fwd.Close()
		return nil, err
	}
	return &PairedReader{forward: fwd, reverse: rev, fullValidation: opts.FullValidation, logger: logger}, nil
}

// Next returns the next (forward, reverse) record pair, or ok=false at the
// end of both streams. A desynchronized pair (one stream exhausted before
// the other) is reported as a *ferrors.ValidationError.
func (p *PairedReader) Next() (Record, Record, bool, error) {
	fwdRec, fwdOK, fwdErr := p.forward.Next()
	if fwdErr != nil {
		return Record{}, Record{}, false, fwdErr
	}
	revRec, revOK, revErr := p.reverse.Next()
	if revErr != nil {
		return Record{}, Record{}, false, revErr
	}

	if fwdOK != revOK {
		return Record{}, Record{}, false, &ferrors.ValidationError{Detail: "paired-end mates desynchronized: one file exhausted before the other"}
	}
	if !fwdOK {
		return Record{}, Record{}, false, nil
	}
	return fwdRec, revRec, true, nil
}

// Close releases both underlying readers.
func (p *PairedReader) Close() error {
	fwdErr := p.forward.Close()
	revErr := p.reverse.Close()
	if fwdErr != nil {
		return fwdErr
	}
	return revErr
}
