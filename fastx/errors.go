package fastx

import "errors"

// Error kinds returned by Parser, Iterator and ForEach. Compare with
// errors.Is; underlying I/O failures are wrapped verbatim rather than
// replaced.
var (
	// ErrMalformedHeader is returned when the first byte of a record is
	// neither '>' nor '@' where one is expected.
	ErrMalformedHeader = errors.New("fastx: malformed header")

	// ErrMalformedRecord is returned when a FASTQ record's line-3
	// separator is missing or its payload doesn't match the header.
	ErrMalformedRecord = errors.New("fastx: malformed record")

	// ErrLengthMismatch is returned when a FASTQ record's quality length
	// doesn't match its sequence length.
	ErrLengthMismatch = errors.New("fastx: sequence/quality length mismatch")

	// ErrTruncatedRecord is returned when EOF is hit inside a record.
	ErrTruncatedRecord = errors.New("fastx: truncated record")
)
