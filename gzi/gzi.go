// Package gzi parses and queries ".gzi" BGZF block index sidecar files,
// mapping an uncompressed byte offset to the BGZF virtual offset of the
// block containing it.
package gzi

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

// ErrIndexCorrupt is returned when a ".gzi" file fails structural
// validation: a truncated file, a size inconsistent with its declared
// entry count, or an intra-block delta that doesn't fit in 16 bits.
var ErrIndexCorrupt = errors.New("gzi: index corrupt")

// Block is one BGZF block's start position in both coordinate spaces.
type Block struct {
	Compressed   uint64
	Uncompressed uint64
}

// Index is an ordered sequence of Blocks, strictly increasing in both
// coordinates, with the implicit first block (0, 0) always present.
type Index struct {
	blocks []Block
}

// LoadFile opens and parses path.
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path) //nolint:gosec // caller-specified index path
	if err != nil {
		return nil, fmt.Errorf("gzi: opening %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only, nothing to flush

	ix, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("gzi: parsing %s: %w", path, err)
	}
	return ix, nil
}

// Load parses the binary little-endian ".gzi" format: a u64 entry count N
// followed by N pairs of u64 (compressed_offset, uncompressed_offset).
func Load(r io.Reader) (*Index, error) {
	var count uint64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("gzi: reading entry count: %w", ErrIndexCorrupt)
		}
		return nil, fmt.Errorf("gzi: reading entry count: %w", err)
	}

	blocks := make([]Block, 0, count+1)
	blocks = append(blocks, Block{0, 0})

	for i := uint64(0); i < count; i++ {
		var pair [2]uint64
		if err := binary.Read(r, binary.LittleEndian, &pair); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, fmt.Errorf("gzi: entry %d: truncated: %w", i, ErrIndexCorrupt)
			}
			return nil, fmt.Errorf("gzi: entry %d: %w", i, err)
		}
		b := Block{Compressed: pair[0], Uncompressed: pair[1]}
		if b.Compressed == 0 && b.Uncompressed == 0 {
			continue // the implicit first block, already present
		}
		blocks = append(blocks, b)
	}

	var extra [1]byte
	if n, err := r.Read(extra[:]); n != 0 || (err != nil && err != io.EOF) {
		return nil, fmt.Errorf("gzi: trailing bytes after %d entries: %w", count, ErrIndexCorrupt)
	}

	for i := 1; i < len(blocks); i++ {
		if blocks[i].Compressed <= blocks[i-1].Compressed || blocks[i].Uncompressed <= blocks[i-1].Uncompressed {
			return nil, fmt.Errorf("gzi: entries not strictly increasing at index %d: %w", i, ErrIndexCorrupt)
		}
	}

	return &Index{blocks: blocks}, nil
}

// Len returns the number of blocks, including the implicit first one.
func (ix *Index) Len() int { return len(ix.blocks) }

// Blocks returns the full ordered block list.
func (ix *Index) Blocks() []Block { return ix.blocks }

// ToVirtual maps an uncompressed byte offset to its BGZF virtual offset:
// the compressed start of the containing block in the high 48 bits, and
// the offset's position within that decompressed block in the low 16
// bits.
func (ix *Index) ToVirtual(uoff uint64) (uint64, error) {
	// Largest index i such that blocks[i].Uncompressed <= uoff.
	i := sort.Search(len(ix.blocks), func(i int) bool {
		return ix.blocks[i].Uncompressed > uoff
	}) - 1
	if i < 0 {
		i = 0
	}

	block := ix.blocks[i]
	delta := uoff - block.Uncompressed
	if delta >= 1<<16 {
		return 0, fmt.Errorf("gzi: intra-block delta %d does not fit in 16 bits: %w", delta, ErrIndexCorrupt)
	}

	return (block.Compressed << 16) | delta, nil
}
