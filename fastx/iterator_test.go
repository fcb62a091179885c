package fastx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIterator_YieldsInOrder(t *testing.T) {
	t.Parallel()

	it := Iter(strings.NewReader(">s1\nAC\n>s2\nGT\n>s3\nTT\n"))

	var ids []string
	for {
		rec, ok := it.Next()
		if !ok {
			break
		}
		ids = append(ids, string(rec.ID()))
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []string{"s1", "s2", "s3"}, ids)
}

func TestIterator_EmptyStreamNoError(t *testing.T) {
	t.Parallel()

	it := Iter(strings.NewReader(""))
	_, ok := it.Next()
	assert.False(t, ok)
	assert.NoError(t, it.Err())
}

func TestIterator_ErrorTerminatesSequence(t *testing.T) {
	t.Parallel()

	it := Iter(strings.NewReader("@r\nACGT\n+\n!!!\n"))
	_, ok := it.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, it.Err(), ErrLengthMismatch)

	// Once terminated, stays terminated.
	_, ok = it.Next()
	assert.False(t, ok)
}

func TestForEach_DispatchesToFastaCallback(t *testing.T) {
	t.Parallel()

	var ids []string
	err := ForEach(strings.NewReader(">s1\nAC\n>s2\nGT\n"),
		func(r *Record) error {
			ids = append(ids, string(r.ID()))
			return nil
		},
		func(r *Record) error {
			t.Fatal("unexpected FASTQ callback")
			return nil
		},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, ids)
}

func TestForEach_DispatchesToFastqCallback(t *testing.T) {
	t.Parallel()

	var quals []string
	err := ForEach(strings.NewReader("@r1\nAC\n+\n!!\n@r2\nGT\n+\n##\n"),
		func(r *Record) error {
			t.Fatal("unexpected FASTA callback")
			return nil
		},
		func(r *Record) error {
			quals = append(quals, string(r.Quality()))
			return nil
		},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"!!", "##"}, quals)
}

func TestForEach_PropagatesCallbackError(t *testing.T) {
	t.Parallel()

	sentinel := assert.AnError
	err := ForEach(strings.NewReader(">s1\nAC\n"),
		func(r *Record) error { return sentinel },
		func(r *Record) error { return nil },
	)
	assert.ErrorIs(t, err, sentinel)
}

func TestForEach_AndIterator_ProduceSameSequence(t *testing.T) {
	t.Parallel()

	input := ">s1\nACGT\n>s2\nTTTT\n>s3\nCCCC\n"

	var viaForEach []string
	err := ForEach(strings.NewReader(input),
		func(r *Record) error {
			viaForEach = append(viaForEach, string(r.Sequence()))
			return nil
		},
		func(r *Record) error { return nil },
	)
	require.NoError(t, err)

	var viaIter []string
	it := Iter(strings.NewReader(input))
	for {
		rec, ok := it.Next()
		if !ok {
			break
		}
		viaIter = append(viaIter, string(rec.Sequence()))
	}
	require.NoError(t, it.Err())

	assert.Equal(t, viaForEach, viaIter)
}
