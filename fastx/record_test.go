package fastx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_IDAndDesc(t *testing.T) {
	t.Parallel()

	r := &Record{name: []byte("s1 a desc")}
	assert.Equal(t, []byte("s1"), r.ID())
	assert.Equal(t, []byte("a desc"), r.Desc())
}

func TestRecord_IDNoSpace(t *testing.T) {
	t.Parallel()

	r := &Record{name: []byte("s1")}
	assert.Equal(t, []byte("s1"), r.ID())
	assert.Empty(t, r.Desc())
}

func TestRecord_ResetPreservesCapacity(t *testing.T) {
	t.Parallel()

	r := &Record{}
	r.appendSequence([]byte("ACGTACGT"))
	capBefore := cap(r.sequence)

	r.Reset()
	assert.Empty(t, r.Sequence())
	assert.Equal(t, capBefore, cap(r.sequence))

	r.appendSequence([]byte("TTTT"))
	assert.Equal(t, []byte("TTTT"), r.Sequence())
	assert.LessOrEqual(t, cap(r.sequence), capBefore)
}
