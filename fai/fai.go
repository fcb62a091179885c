// Package fai parses and queries ".fai" FASTA index sidecar files, mapping
// a sequence name and a [start, end) base range to the byte range those
// bases occupy in the uncompressed FASTA text.
package fai

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrIndexCorrupt is returned when a ".fai" file fails structural
// validation: wrong field count, non-decimal integers, or an inconsistent
// line_width/line_bases pair.
var ErrIndexCorrupt = errors.New("fai: index corrupt")

// ErrRangeOutOfBounds is returned by Entry.Locate when start/end fall
// outside [0, length] or are inverted.
var ErrRangeOutOfBounds = errors.New("fai: range out of bounds")

// Entry describes one sequence's layout within the uncompressed FASTA
// text, per samtools faidx: length in bases, byte offset of the first
// base, bases per line, and bytes per line including the line terminator.
type Entry struct {
	Length    uint64
	Offset    uint64
	LineBases uint64
	LineWidth uint64
}

// byteOffset returns the uncompressed byte offset of base index i.
func (e Entry) byteOffset(i uint64) uint64 {
	if e.LineBases == 0 {
		return e.Offset + i
	}
	return e.Offset + (i/e.LineBases)*e.LineWidth + (i % e.LineBases)
}

// Locate maps a 0-based half-open base range [start, end) within this
// sequence to the corresponding half-open byte range in the uncompressed
// FASTA text. The returned range still interleaves sequence bytes with
// line-terminator bytes; the caller must strip those after reading.
func (e Entry) Locate(start, end uint64) (startByte, endByte uint64, err error) {
	if start > end || end > e.Length {
		return 0, 0, fmt.Errorf("fai: locate [%d,%d) in sequence of length %d: %w", start, end, e.Length, ErrRangeOutOfBounds)
	}
	return e.byteOffset(start), e.byteOffset(end), nil
}

// Index is an in-memory, insertion-ordered FASTA index.
type Index struct {
	entries map[string]Entry
	names   []string
}

// Get returns the entry for name and whether it was found.
func (ix *Index) Get(name string) (Entry, bool) {
	e, ok := ix.entries[name]
	return e, ok
}

// Names returns the sequence names in the order they appeared in the
// index file.
func (ix *Index) Names() []string { return ix.names }

// LoadFile opens and parses path.
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path) //nolint:gosec // caller-specified index path
	if err != nil {
		return nil, fmt.Errorf("fai: opening %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only, nothing to flush

	ix, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("fai: parsing %s: %w", path, err)
	}
	return ix, nil
}

// Load parses a ".fai" file: one tab-separated line per sequence,
// "name\tlength\toffset\tline_bases\tline_width\n".
func Load(r io.Reader) (*Index, error) {
	ix := &Index{entries: make(map[string]Entry)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 5 {
			return nil, fmt.Errorf("fai: line %d: expected 5 tab-separated fields, got %d: %w", lineNum, len(fields), ErrIndexCorrupt)
		}

		name := fields[0]
		length, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("fai: line %d: invalid length %q: %w", lineNum, fields[1], ErrIndexCorrupt)
		}
		offset, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("fai: line %d: invalid offset %q: %w", lineNum, fields[2], ErrIndexCorrupt)
		}
		lineBases, err := strconv.ParseUint(fields[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("fai: line %d: invalid line_bases %q: %w", lineNum, fields[3], ErrIndexCorrupt)
		}
		lineWidth, err := strconv.ParseUint(fields[4], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("fai: line %d: invalid line_width %q: %w", lineNum, fields[4], ErrIndexCorrupt)
		}

		if lineWidth < lineBases {
			return nil, fmt.Errorf("fai: line %d: line_width %d < line_bases %d: %w", lineNum, lineWidth, lineBases, ErrIndexCorrupt)
		}
		if delta := lineWidth - lineBases; delta != 1 && delta != 2 {
			return nil, fmt.Errorf("fai: line %d: line_width-line_bases is %d, want 1 or 2: %w", lineNum, delta, ErrIndexCorrupt)
		}

		if _, dup := ix.entries[name]; !dup {
			ix.names = append(ix.names, name)
		}
		ix.entries[name] = Entry{Length: length, Offset: offset, LineBases: lineBases, LineWidth: lineWidth}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("fai: scanning index: %w", err)
	}

	return ix, nil
}
