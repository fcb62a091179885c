package fastx

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// Parser reads FASTA or FASTQ records from a byte stream, filling a caller
// supplied Record on each call to Next. It auto-detects the format from the
// first non-whitespace byte on the first call and memoizes it; every
// subsequent call is dispatched straight to the matching state machine.
//
// A Parser is not safe for concurrent use.
type Parser struct {
	reader      *bufio.Reader
	line        []byte // reusable line-scratch buffer
	format      Format
	detected    bool
	firstRecord bool
}

// New creates a Parser that auto-detects FASTA vs FASTQ from the first
// record.
func New(r io.Reader) *Parser {
	return &Parser{
		reader:      bufio.NewReaderSize(r, 1<<20), // 1MB buffer, matches teacher's parser
		line:        make([]byte, 0, 512),
		firstRecord: true,
	}
}

// NewFasta creates a Parser that always parses FASTA, skipping detection.
func NewFasta(r io.Reader) *Parser {
	p := New(r)
	p.format = FormatFasta
	p.detected = true
	return p
}

// NewFastq creates a Parser that always parses FASTQ, skipping detection.
func NewFastq(r io.Reader) *Parser {
	p := New(r)
	p.format = FormatFastq
	p.detected = true
	return p
}

// Format returns the detected or forced format. On an auto-detecting Parser
// this is FormatUnknown until a Next call has detected '>' or '@' (it stays
// FormatUnknown for an empty or whitespace-only stream).
func (p *Parser) Format() Format { return p.format }

// Next fills rec with the next record from the stream. It returns the
// number of bytes written into rec's buffers and a nil error on success,
// (0, io.EOF) on clean end of stream, or (0, err) on a malformed record.
// After an error, rec's contents are unspecified.
func (p *Parser) Next(rec *Record) (int, error) {
	if !p.detected {
		format, err := detectFormat(p.reader)
		if err != nil {
			return 0, err
		}
		if format == FormatEmpty {
			return 0, io.EOF
		}
		p.format = format
		p.detected = true
	}

	rec.Reset()

	switch p.format {
	case FormatFasta:
		return p.nextFasta(rec)
	case FormatFastq:
		return p.nextFastq(rec)
	default:
		return 0, ErrMalformedHeader
	}
}

// nextFasta implements an AwaitHeader/AwaitSeq state machine: a header line
// starting with '>' followed by zero or more sequence lines, terminated by
// the next '>' or end of stream. Reaching end of stream before any sequence
// byte is ErrTruncatedRecord.
func (p *Parser) nextFasta(rec *Record) (int, error) {
	line, err := p.readHeaderLine()
	if err != nil {
		if err == io.EOF {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("fastx: reading header: %w", err)
	}
	if len(line) == 0 || line[0] != '>' {
		return 0, ErrMalformedHeader
	}
	rec.appendName(line[1:])

	sawSeqByte := false
	hitEOF := false
	for {
		peeked, peekErr := p.reader.Peek(1)
		if peekErr != nil {
			// EOF (or any read error surfacing at Peek) ends the record.
			hitEOF = true
			break
		}
		if peeked[0] == '>' {
			break
		}
		line, err = p.readLine()
		if err != nil {
			if err == io.EOF {
				hitEOF = true
				break
			}
			return 0, fmt.Errorf("fastx: reading sequence: %w", err)
		}
		if len(line) == 0 {
			continue // blank sequence lines are skipped silently
		}
		rec.appendSequence(line)
		sawSeqByte = true
	}

	if !sawSeqByte && hitEOF {
		return 0, ErrTruncatedRecord
	}
	return len(rec.name) + len(rec.sequence), nil
}

// nextFastq implements the strict four-line FASTQ reader: header, sequence,
// separator, quality.
func (p *Parser) nextFastq(rec *Record) (int, error) {
	line, err := p.readHeaderLine()
	if err != nil {
		if err == io.EOF {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("fastx: reading header: %w", err)
	}
	if len(line) == 0 || line[0] != '@' {
		return 0, ErrMalformedHeader
	}
	rec.appendName(line[1:])

	line, err = p.readLine()
	if err != nil {
		return 0, truncatedOrWrapped(err, "reading sequence")
	}
	rec.appendSequence(line)

	line, err = p.readLine()
	if err != nil {
		return 0, truncatedOrWrapped(err, "reading separator")
	}
	if len(line) == 0 || line[0] != '+' {
		return 0, ErrMalformedRecord
	}
	if plus := line[1:]; len(plus) > 0 && !bytes.Equal(plus, rec.name) {
		return 0, ErrMalformedRecord
	}

	line, err = p.readLine()
	if err != nil {
		return 0, truncatedOrWrapped(err, "reading quality")
	}
	rec.appendQuality(line)

	if len(rec.quality) != len(rec.sequence) {
		return 0, ErrLengthMismatch
	}

	return len(rec.name) + len(rec.sequence) + len(rec.quality), nil
}

func truncatedOrWrapped(err error, what string) error {
	if err == io.EOF {
		return ErrTruncatedRecord
	}
	return fmt.Errorf("fastx: %s: %w", what, err)
}

// readHeaderLine reads the next header line, skipping blank lines ahead of
// it. Skipping only happens before the first record of the stream: detectFormat
// peeks past leading blank lines without consuming them, so the first header
// read has to clear them itself. Later blank lines are not skipped here: in
// FASTQ a blank line between records surfaces as ErrMalformedHeader, while in
// FASTA the sequence loop of nextFasta has already consumed it as a blank
// sequence line.
func (p *Parser) readHeaderLine() ([]byte, error) {
	for {
		line, err := p.readLine()
		if err != nil {
			return nil, err
		}
		if len(line) == 0 && p.firstRecord {
			continue
		}
		p.firstRecord = false
		return line, nil
	}
}

// readLine reads one line up to '\n', stripping an optional trailing '\r',
// growing p.line as needed.
func (p *Parser) readLine() ([]byte, error) {
	p.line = p.line[:0]

	for {
		segment, isPrefix, err := p.reader.ReadLine()
		if err != nil {
			return nil, err
		}
		p.line = append(p.line, segment...)
		if !isPrefix {
			break
		}
	}

	p.line = bytes.TrimSuffix(p.line, []byte{'\r'})
	return p.line, nil
}
