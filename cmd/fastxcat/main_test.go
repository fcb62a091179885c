package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_Fasta(t *testing.T) {
	t.Parallel()

	in := strings.NewReader(">s1 desc\nACGT\nACGT\n>s2\nTTTT\n")
	var out bytes.Buffer

	require.NoError(t, execute(in, &out))
	assert.Equal(t, ">s1 desc\nACGTACGT\n>s2\nTTTT\n", out.String())
}

func TestExecute_Fastq(t *testing.T) {
	t.Parallel()

	in := strings.NewReader("@r1\nACGT\n+\nIIII\n@r2\nTTTT\n+r2\nJJJJ\n")
	var out bytes.Buffer

	require.NoError(t, execute(in, &out))
	assert.Equal(t, "@r1\nACGT\n+\nIIII\n@r2\nTTTT\n+\nJJJJ\n", out.String())
}

func TestExecute_MalformedInputPropagatesError(t *testing.T) {
	t.Parallel()

	in := strings.NewReader("not a record\n")
	var out bytes.Buffer

	err := execute(in, &out)
	assert.Error(t, err)
}
