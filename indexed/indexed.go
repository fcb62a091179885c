// Package indexed composes a ".fai" sequence index and a ".gzi" BGZF block
// index over a BGZF-compressed FASTA file to provide O(1) random access to
// arbitrary sequence subranges without decompressing the whole file.
package indexed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/vertti/fastx/bytesource"
	"github.com/vertti/fastx/fai"
	"github.com/vertti/fastx/fastx"
	"github.com/vertti/fastx/gzi"
)

// ErrUnknownSequence is returned when a fetch names a sequence absent from
// the ".fai" index.
var ErrUnknownSequence = errors.New("indexed: unknown sequence")

// Reader provides random access into a BGZF-compressed FASTA file via its
// colocated ".fai" and ".gzi" sidecar indexes.
//
// A Reader is not safe for concurrent use: FetchRange reuses an internal
// scratch buffer and seeks a single underlying ByteSource.
type Reader struct {
	fai *fai.Index
	gzi *gzi.Index
	src bytesource.BGZFSeekable

	scratch []byte
}

// Open opens a BGZF FASTA file at fastaPath, requiring colocated index
// files at fastaPath+".fai" and fastaPath+".gzi".
func Open(fastaPath string) (*Reader, error) {
	faiIdx, err := fai.LoadFile(fastaPath + ".fai")
	if err != nil {
		return nil, fmt.Errorf("indexed: loading fai for %s: %w", fastaPath, err)
	}
	gziIdx, err := gzi.LoadFile(fastaPath + ".gzi")
	if err != nil {
		return nil, fmt.Errorf("indexed: loading gzi for %s: %w", fastaPath, err)
	}

	src, err := bytesource.Open(fastaPath)
	if err != nil {
		return nil, fmt.Errorf("indexed: opening %s: %w", fastaPath, err)
	}
	bgzfSrc, ok := src.(bytesource.BGZFSeekable)
	if !ok {
		_ = src.Close()
		return nil, fmt.Errorf("indexed: %s is not BGZF-framed", fastaPath)
	}

	return &Reader{fai: faiIdx, gzi: gziIdx, src: bgzfSrc}, nil
}

// OpenURLs opens a BGZF FASTA resource served over HTTP(S), fetching its
// ".fai" and ".gzi" sidecars concurrently. All three URLs are fetched with
// client (or http.DefaultClient if nil).
func OpenURLs(fastaURL, faiURL, gziURL string, client *http.Client) (*Reader, error) {
	var faiIdx *fai.Index
	var gziIdx *gzi.Index

	g := new(errgroup.Group)
	g.Go(func() error {
		body, err := fetchURL(client, faiURL)
		if err != nil {
			return fmt.Errorf("indexed: fetching fai %s: %w", faiURL, err)
		}
		defer body.Close() //nolint:errcheck // read-only body
		idx, err := fai.Load(body)
		if err != nil {
			return fmt.Errorf("indexed: parsing fai %s: %w", faiURL, err)
		}
		faiIdx = idx
		return nil
	})
	g.Go(func() error {
		body, err := fetchURL(client, gziURL)
		if err != nil {
			return fmt.Errorf("indexed: fetching gzi %s: %w", gziURL, err)
		}
		defer body.Close() //nolint:errcheck // read-only body
		idx, err := gzi.Load(body)
		if err != nil {
			return fmt.Errorf("indexed: parsing gzi %s: %w", gziURL, err)
		}
		gziIdx = idx
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	src, err := bytesource.OpenURL(fastaURL, true, client)
	if err != nil {
		return nil, fmt.Errorf("indexed: opening %s: %w", fastaURL, err)
	}
	bgzfSrc, ok := src.(bytesource.BGZFSeekable)
	if !ok {
		_ = src.Close()
		return nil, fmt.Errorf("indexed: %s is not BGZF-framed", fastaURL)
	}

	return &Reader{fai: faiIdx, gzi: gziIdx, src: bgzfSrc}, nil
}

func fetchURL(client *http.Client, url string) (io.ReadCloser, error) {
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Get(url) //nolint:gosec,noctx // caller-specified index URL
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

// Close releases the underlying ByteSource.
func (r *Reader) Close() error { return r.src.Close() }

// SeqNames returns the sequence names known to the ".fai" index, in file
// order.
func (r *Reader) SeqNames() []string { return r.fai.Names() }

// Fetch returns the full sequence named name.
func (r *Reader) Fetch(name string) (*fastx.Record, error) {
	entry, ok := r.fai.Get(name)
	if !ok {
		return nil, fmt.Errorf("indexed: %s: %w", name, ErrUnknownSequence)
	}
	return r.fetchRange(name, entry, 0, entry.Length)
}

// FetchRange returns the half-open base range [start, end) of sequence
// name.
func (r *Reader) FetchRange(name string, start, end uint64) (*fastx.Record, error) {
	entry, ok := r.fai.Get(name)
	if !ok {
		return nil, fmt.Errorf("indexed: %s: %w", name, ErrUnknownSequence)
	}
	return r.fetchRange(name, entry, start, end)
}

func (r *Reader) fetchRange(name string, entry fai.Entry, start, end uint64) (*fastx.Record, error) {
	startByte, endByte, err := entry.Locate(start, end)
	if err != nil {
		return nil, fmt.Errorf("indexed: %s[%d:%d]: %w", name, start, end, err)
	}

	vo, err := r.gzi.ToVirtual(startByte)
	if err != nil {
		return nil, fmt.Errorf("indexed: %s[%d:%d]: %w", name, start, end, err)
	}
	if err := r.src.SeekVirtual(vo); err != nil {
		return nil, fmt.Errorf("indexed: %s[%d:%d]: seeking: %w", name, start, end, err)
	}

	width := endByte - startByte
	if uint64(cap(r.scratch)) < width {
		r.scratch = make([]byte, width)
	}
	raw := r.scratch[:width]
	if _, err := io.ReadFull(r.src, raw); err != nil {
		return nil, fmt.Errorf("indexed: %s[%d:%d]: reading: %w", name, start, end, err)
	}

	rec := &fastx.Record{}
	rec.SetName([]byte(name))
	rec.SetSequence(stripNewlines(raw))
	return rec, nil
}

func stripNewlines(b []byte) []byte {
	if !bytes.ContainsAny(b, "\r\n") {
		return b
	}
	out := b[:0:0] // zero-cap slice forces a fresh allocation, not an in-place filter
	for _, c := range b {
		if c == '\n' || c == '\r' {
			continue
		}
		out = append(out, c)
	}
	return out
}
