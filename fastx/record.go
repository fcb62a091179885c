// Package fastx provides zero-copy streaming parsing of FASTA and FASTQ
// records.
package fastx

import "bytes"

// Record is a reusable, in-place container for one parsed sequence record.
// Name, sequence and (for FASTQ) quality are stored in growable buffers
// that are truncated and refilled on each Parser.Next call rather than
// reallocated, so a single Record can be reused across an entire stream.
type Record struct {
	name     []byte
	sequence []byte
	quality  []byte
}

// Reset truncates the record's buffers to zero length without releasing
// their backing arrays.
func (r *Record) Reset() {
	r.name = r.name[:0]
	r.sequence = r.sequence[:0]
	r.quality = r.quality[:0]
}

// Name returns the full header line with the leading '>' or '@' stripped.
func (r *Record) Name() []byte { return r.name }

// ID returns the prefix of Name up to the first ASCII space.
func (r *Record) ID() []byte {
	if i := bytes.IndexByte(r.name, ' '); i >= 0 {
		return r.name[:i]
	}
	return r.name
}

// Desc returns the remainder of Name after the first ASCII space, or an
// empty slice if there is none.
func (r *Record) Desc() []byte {
	if i := bytes.IndexByte(r.name, ' '); i >= 0 {
		return r.name[i+1:]
	}
	return r.name[len(r.name):]
}

// Sequence returns the concatenated sequence bytes, with all line breaks
// removed.
func (r *Record) Sequence() []byte { return r.sequence }

// Quality returns the quality string for a FASTQ record, or an empty slice
// for a FASTA record.
func (r *Record) Quality() []byte { return r.quality }

// SeqLen returns len(Sequence()).
func (r *Record) SeqLen() int { return len(r.sequence) }

// SetName truncates the record and copies b in as its name. Used by callers
// outside package fastx (such as indexed.Reader) that populate a Record
// without going through a Parser.
func (r *Record) SetName(b []byte) {
	r.name = r.name[:0]
	r.appendName(b)
}

// SetSequence truncates the sequence buffer and copies b in as its
// contents. See SetName.
func (r *Record) SetSequence(b []byte) {
	r.sequence = r.sequence[:0]
	r.appendSequence(b)
}

func (r *Record) appendName(b []byte) {
	r.name = append(r.name, b...)
}

func (r *Record) appendSequence(b []byte) {
	r.sequence = append(r.sequence, b...)
}

func (r *Record) appendQuality(b []byte) {
	r.quality = append(r.quality, b...)
}
