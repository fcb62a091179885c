package fastx

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr error
	}{
		{name: "fasta header", input: ">s1\nACGT\n", want: FormatFasta},
		{name: "fastq header", input: "@r1\nACGT\n", want: FormatFastq},
		{name: "leading whitespace before fasta header", input: "  \n>s1\nACGT\n", want: FormatFasta},
		{name: "empty stream", input: "", want: FormatEmpty},
		{name: "whitespace-only stream", input: "\n\n\n", want: FormatEmpty},
		{name: "whitespace-only stream, no trailing newline", input: "   \t", want: FormatEmpty},
		{name: "garbage first byte", input: "not a record\n", want: FormatUnknown, wantErr: ErrMalformedHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			br := bufio.NewReader(strings.NewReader(tt.input))
			got, err := detectFormat(br)
			assert.Equal(t, tt.want, got)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
