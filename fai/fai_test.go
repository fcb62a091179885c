package fai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFai = "chr1\t248956422\t6\t80\t81\nchr2\t242193529\t250000000\t80\t81\n"

func TestLoad_ParsesEntries(t *testing.T) {
	t.Parallel()

	ix, err := Load(strings.NewReader(sampleFai))
	require.NoError(t, err)

	assert.Equal(t, []string{"chr1", "chr2"}, ix.Names())

	chr1, ok := ix.Get("chr1")
	require.True(t, ok)
	assert.Equal(t, Entry{Length: 248956422, Offset: 6, LineBases: 80, LineWidth: 81}, chr1)

	_, ok = ix.Get("chr3")
	assert.False(t, ok)
}

func TestLoad_WrongFieldCount(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader("chr1\t100\t0\t80\n"))
	assert.ErrorIs(t, err, ErrIndexCorrupt)
}

func TestLoad_NonDecimalInteger(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader("chr1\tXYZ\t0\t80\t81\n"))
	assert.ErrorIs(t, err, ErrIndexCorrupt)
}

func TestLoad_LineWidthLessThanLineBases(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader("chr1\t100\t0\t80\t70\n"))
	assert.ErrorIs(t, err, ErrIndexCorrupt)
}

func TestLoad_InvalidLineWidthDelta(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader("chr1\t100\t0\t80\t83\n"))
	assert.ErrorIs(t, err, ErrIndexCorrupt)
}

func TestLoad_SkipsBlankLines(t *testing.T) {
	t.Parallel()

	ix, err := Load(strings.NewReader("\nchr1\t100\t0\t80\t81\n\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, len(ix.Names()))
}

func TestEntry_Locate(t *testing.T) {
	t.Parallel()

	e := Entry{Length: 1000, Offset: 100, LineBases: 80, LineWidth: 81}

	start, end, err := e.Locate(0, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), start)
	assert.Equal(t, uint64(101), end)

	// Position 100 -> line 1, column 20 -> offset = 100 + 81 + 20 = 201
	start, _, err = e.Locate(100, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(201), start)
}

func TestEntry_LocateSpanningLineTerminator(t *testing.T) {
	t.Parallel()

	// s1 length=10 offset=4 line_bases=5 line_width=6.
	e := Entry{Length: 10, Offset: 4, LineBases: 5, LineWidth: 6}
	startByte, endByte, err := e.Locate(3, 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), startByte)
	assert.Equal(t, uint64(13), endByte)
	assert.Equal(t, uint64(6), endByte-startByte) // raw bytes incl. the newline at offset 9
}

func TestEntry_LocateOutOfBounds(t *testing.T) {
	t.Parallel()

	e := Entry{Length: 10, Offset: 0, LineBases: 5, LineWidth: 6}

	_, _, err := e.Locate(0, 11)
	assert.ErrorIs(t, err, ErrRangeOutOfBounds)

	_, _, err = e.Locate(5, 2)
	assert.ErrorIs(t, err, ErrRangeOutOfBounds)
}
