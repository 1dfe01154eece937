// Package ferrors defines FIGARO's error taxonomy (spec §7): InputNotFound,
// FormatError, ValidationError, ArgumentError and EncodingError. Each is a
// distinct type so callers can discriminate with errors.As while still getting
// a useful message from Error().
package ferrors

import "fmt"

// InputNotFound reports a missing directory or file.
type InputNotFound struct {
	Path string
	Err  error
}

func (e *InputNotFound) Error() string {
	return fmt.Sprintf("input not found: %s: %v", e.Path, e.Err)
}

func (e *InputNotFound) Unwrap() error { return e.Err }

// FormatError reports a malformed FASTQ: bad line count, bad metadata under
// full validation, or mismatched sequence/quality lengths.
type FormatError struct {
	Path   string
	Detail string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed fastq %s: %s", e.Path, e.Detail)
}

// ValidationError reports cross-file inconsistency: mixed read lengths across
// files in a direction, mismatched forward/reverse file counts, desynchronized
// paired-end mates.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Detail)
}

// ArgumentError reports an out-of-range flag, unknown naming alias, forbidden
// output filename character, or an uncastable numeric input.
type ArgumentError struct {
	Argument string
	Detail   string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument %s: %s", e.Argument, e.Detail)
}

// EncodingError reports that no quality-encoding scheme matched a FASTQ file.
type EncodingError struct {
	Path string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("no quality encoding scheme matches %s", e.Path)
}
