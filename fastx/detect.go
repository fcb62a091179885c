package fastx

import (
	"bufio"
	"fmt"
	"io"
)

// Format identifies the sequence format a stream contains.
type Format uint8

const (
	// FormatUnknown means the format has not been determined yet.
	FormatUnknown Format = iota
	// FormatEmpty means the stream produced no non-whitespace bytes.
	FormatEmpty
	// FormatFasta means the stream starts with a '>' header.
	FormatFasta
	// FormatFastq means the stream starts with a '@' header.
	FormatFastq
)

// detectFormat peeks the first non-whitespace byte of br without consuming
// it. A stream that is empty, or contains only whitespace, yields
// (FormatEmpty, nil); anything other than '>' or '@' yields
// ErrMalformedHeader.
func detectFormat(br *bufio.Reader) (Format, error) {
	for i := 1; ; i++ {
		peeked, err := br.Peek(i)
		if len(peeked) < i {
			// Hit end of stream (or a read error) while still looking for
			// the first non-whitespace byte; every byte seen so far was
			// whitespace, so this is not a malformed header.
			if err != nil && err != io.EOF {
				return FormatUnknown, fmt.Errorf("fastx: peeking header: %w", err)
			}
			return FormatEmpty, nil
		}
		b := peeked[i-1]
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '>':
			return FormatFasta, nil
		case '@':
			return FormatFastq, nil
		default:
			return FormatUnknown, ErrMalformedHeader
		}
	}
}
