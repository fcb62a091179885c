package fastx

import "io"

// Iterator is a lazy, finite, non-restartable sequence of owned Records. It
// allocates a fresh Record per step, trading throughput for the ergonomics
// of range-style iteration. For the zero-allocation hot path use ForEach.
type Iterator struct {
	p    *Parser
	err  error
	done bool
}

// Iter creates an Iterator that auto-detects FASTA vs FASTQ from r.
func Iter(r io.Reader) *Iterator {
	return &Iterator{p: New(r)}
}

// IterFasta creates an Iterator that parses r as FASTA without detection.
func IterFasta(r io.Reader) *Iterator {
	return &Iterator{p: NewFasta(r)}
}

// IterFastq creates an Iterator that parses r as FASTQ without detection.
func IterFastq(r io.Reader) *Iterator {
	return &Iterator{p: NewFastq(r)}
}

// Next returns the next Record and true, or (nil, false) at end of stream
// or after an error. Once it returns false it always returns false; call
// Err to distinguish a clean end of stream from a parse error.
func (it *Iterator) Next() (*Record, bool) {
	if it.done {
		return nil, false
	}

	rec := &Record{}
	_, err := it.p.Next(rec)
	if err != nil {
		it.done = true
		if err != io.EOF {
			it.err = err
		}
		return nil, false
	}
	return rec, true
}

// Err returns the error that terminated iteration, or nil if the stream
// ended cleanly (or iteration is still in progress).
func (it *Iterator) Err() error { return it.err }

// ForEach parses r, invoking onFasta or onFastq (whichever matches the
// detected format) once per record until EOF or the first error. It reuses
// a single Record across the whole traversal, allocating nothing per
// record; this is the hot path for callers that don't need owned Records.
func ForEach(r io.Reader, onFasta, onFastq func(*Record) error) error {
	p := New(r)
	rec := &Record{}

	for {
		_, err := p.Next(rec)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var cbErr error
		switch p.Format() {
		case FormatFasta:
			cbErr = onFasta(rec)
		case FormatFastq:
			cbErr = onFastq(rec)
		}
		if cbErr != nil {
			return cbErr
		}
	}
}
