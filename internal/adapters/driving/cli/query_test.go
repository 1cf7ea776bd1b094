package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raporlabs/finrag/internal/core/domain"
)

func TestParseChunkType_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  domain.ChunkType
	}{
		{"", ""},
		{"text", domain.ChunkTypeText},
		{"table", domain.ChunkTypeTable},
		{"chart", domain.ChunkTypeChart},
	}
	for _, tt := range tests {
		got, err := parseChunkType(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseChunkType_Unknown(t *testing.T) {
	_, err := parseChunkType("graph")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "graph")
}

func TestSnippet_Truncation(t *testing.T) {
	assert.Equal(t, "kısa", snippet("kısa", 120))
	// Rune-bounded, not byte-bounded.
	long := "ğüşiöçĞÜŞİÖÇ"
	assert.Equal(t, "ğüşi...", snippet(long, 4))
}
