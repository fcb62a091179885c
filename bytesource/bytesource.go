// Package bytesource provides a unified byte-reader abstraction over plain
// files, gzip-compressed files, BGZF-compressed files, and HTTP(S) range
// sources, so the fastx parser and the indexed reader don't need to know
// which kind of input they were handed.
package bytesource

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/hts/bgzf"
	"github.com/klauspost/compress/gzip"
)

// ErrMalformedHeader is returned by Open when a ".gz"-suffixed file's
// header does not carry gzip magic.
var ErrMalformedHeader = errors.New("bytesource: malformed gzip header")

// Kind identifies the underlying framing of a Source.
type Kind uint8

const (
	// KindPlain is an uncompressed byte stream.
	KindPlain Kind = iota
	// KindGzip is a sequentially-decompressed gzip stream (not BGZF).
	KindGzip
	// KindBGZF is a seekable, block-gzip stream.
	KindBGZF
)

// Source is a blocking byte reader, optionally seekable.
type Source interface {
	io.Reader
	io.Closer
	// Kind reports the underlying framing.
	Kind() Kind
}

// Seekable is implemented by plain, seekable Sources.
type Seekable interface {
	Source
	// SeekUncompressed seeks to an absolute byte offset.
	SeekUncompressed(off int64) error
}

// BGZFSeekable is implemented by BGZF-tagged Sources.
type BGZFSeekable interface {
	Source
	// SeekVirtual seeks to a BGZF virtual offset: the high 48 bits select
	// the compressed block, the low 16 bits select the uncompressed
	// position within that decompressed block.
	SeekVirtual(vo uint64) error
}

var gzipMagic = [2]byte{0x1f, 0x8b}

// bgzfExtraSignature is the two-byte SI1/SI2 subfield id ('B','C') that
// marks a gzip member's FEXTRA field as a BGZF block-size record.
var bgzfExtraSignature = [2]byte{'B', 'C'}

// Open opens path for streaming. Dispatch is extension- and content-based:
// a ".gz" suffix whose header carries gzip magic and a BGZF FEXTRA
// signature is treated as seekable BGZF; any other ".gz" file is streamed
// through a sequential gzip decoder; anything else is a plain buffered
// file.
func Open(path string) (Source, error) {
	f, err := os.Open(path) //nolint:gosec // caller-specified path is the whole point of this API
	if err != nil {
		return nil, fmt.Errorf("bytesource: opening %s: %w", path, err)
	}

	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return &fileSource{f: f, br: bufio.NewReaderSize(f, 1<<16)}, nil
	}

	isBGZF, err := sniffBGZF(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("bytesource: inspecting %s: %w", path, err)
	}
	if isBGZF {
		r, err := bgzf.NewReader(f, 1)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("bytesource: opening bgzf %s: %w", path, err)
		}
		return &bgzfSource{f: f, r: r}, nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("bytesource: rewinding %s: %w", path, err)
	}
	br := bufio.NewReaderSize(f, 1<<16)
	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		_ = f.Close()
		return nil, fmt.Errorf("bytesource: inspecting %s: %w", path, err)
	}
	if len(magic) < 2 || magic[0] != gzipMagic[0] || magic[1] != gzipMagic[1] {
		_ = f.Close()
		return nil, fmt.Errorf("bytesource: %s: %w", path, ErrMalformedHeader)
	}

	gr, err := gzip.NewReader(br)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("bytesource: opening gzip %s: %w", path, err)
	}
	return &gzipSource{f: f, gr: gr}, nil
}

// sniffBGZF reports whether f (left positioned at offset 0 on return) is a
// gzip member whose FEXTRA field advertises the BGZF "BC" subfield. It does
// not validate the rest of the BGZF framing; the bgzf.Reader does that.
func sniffBGZF(f *os.File) (bool, error) {
	defer func() { _, _ = f.Seek(0, io.SeekStart) }()

	header := make([]byte, 18)
	n, err := io.ReadFull(f, header)
	if err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return false, nil
		}
		return false, err
	}
	_ = n

	if header[0] != gzipMagic[0] || header[1] != gzipMagic[1] {
		return false, nil
	}
	const flgFExtra = 1 << 2
	flags := header[3]
	if flags&flgFExtra == 0 {
		return false, nil
	}
	// Fixed header is 10 bytes, then a 2-byte XLEN, then XLEN bytes of
	// extra subfields. BGZF always places a 6-byte BC subfield first.
	if header[12] != bgzfExtraSignature[0] || header[13] != bgzfExtraSignature[1] {
		return false, nil
	}
	return true, nil
}

type fileSource struct {
	f  *os.File
	br *bufio.Reader
}

func (s *fileSource) Read(p []byte) (int, error) { return s.br.Read(p) }
func (s *fileSource) Close() error                { return s.f.Close() }
func (s *fileSource) Kind() Kind                  { return KindPlain }

func (s *fileSource) SeekUncompressed(off int64) error {
	if _, err := s.f.Seek(off, io.SeekStart); err != nil {
		return fmt.Errorf("bytesource: seek: %w", err)
	}
	s.br.Reset(s.f)
	return nil
}

type gzipSource struct {
	f  *os.File
	gr *gzip.Reader
}

func (s *gzipSource) Read(p []byte) (int, error) { return s.gr.Read(p) }
func (s *gzipSource) Kind() Kind                  { return KindGzip }

func (s *gzipSource) Close() error {
	err := s.gr.Close()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return err
}

type bgzfSource struct {
	f *os.File
	r *bgzf.Reader
}

func (s *bgzfSource) Read(p []byte) (int, error) { return s.r.Read(p) }
func (s *bgzfSource) Kind() Kind                  { return KindBGZF }

func (s *bgzfSource) Close() error {
	err := s.r.Close()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// SeekVirtual seeks to a BGZF virtual offset, per bgzf.Offset: the high 48
// bits are the compressed block start, the low 16 bits are the
// uncompressed position within that block.
func (s *bgzfSource) SeekVirtual(vo uint64) error {
	if err := s.r.Seek(bgzf.Offset{File: int64(vo >> 16), Block: uint16(vo & 0xffff)}); err != nil { //nolint:gosec // masked to 16 bits
		return fmt.Errorf("bytesource: bgzf seek: %w", err)
	}
	return nil
}
