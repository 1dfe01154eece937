package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"figaro/internal/fastqio"
	"figaro/internal/ferrors"
	"figaro/internal/naming"
	"figaro/internal/quality"
)

// checkPairedSync drains each forward/reverse mate pair in lockstep through a
// fastqio.PairedReader, surfacing a *ferrors.ValidationError if one file runs
// out of reads before the other, matching FastqFilePair.getNextReadPair's xor
// check. Only invoked under full validation (supplemented feature #2).
func checkPairedSync(forward, reverse []naming.Descriptor, scheme quality.Scheme, logger *zap.Logger) error {
	for i := range forward {
		pr, err := fastqio.NewPairedReader(forward[i].FilePath, reverse[i].FilePath, fastqio.Options{Subsample: 1, Scheme: &scheme, FullValidation: true}, logger)
		if err != nil {
			return err
		}
		for {
			_, _, ok, err := pr.Next()
			if err != nil {
				pr.Close()
				return err
			}
			if !ok {
				break
			}
		}
		pr.Close()
	}
	return nil
}

// checkReadLengths scans every file in descriptors and returns the single
// read length shared by all of them, matching checkReadLengths's
// single-consistent-length-and-zero-variance requirement.
func checkReadLengths(descriptors []naming.Descriptor, scheme quality.Scheme, fullValidation bool, logger *zap.Logger) (int, error) {
	length := -1
	for _, desc := range descriptors {
		reader, err := fastqio.New(desc.FilePath, fastqio.Options{Subsample: 1, Scheme: &scheme, FullValidation: fullValidation}, logger)
		if err != nil {
			return 0, err
		}
		for {
			rec, ok, err := reader.Next()
			if err != nil {
				reader.Close()
				return 0, err
			}
			if !ok {
				break
			}
			if length == -1 {
				length = len(rec.Sequence)
				continue
			}
			if len(rec.Sequence) != length {
				reader.Close()
				return 0, &ferrors.ValidationError{Detail: fmt.Sprintf("inconsistent read length in %s: expected %d, got %d", desc.FilePath, length, len(rec.Sequence))}
			}
		}
		reader.Close()
	}
	if length == -1 {
		return 0, &ferrors.ValidationError{Detail: "no reads found"}
	}
	return length, nil
}
