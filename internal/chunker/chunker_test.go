package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	c := New()
	assert.Equal(t, DefaultChunkSize, c.Size())
	assert.Equal(t, DefaultOverlap, c.Overlap())
}

func TestNew_OverlapClamped(t *testing.T) {
	c := New(WithChunkSize(100), WithOverlap(200))
	assert.Equal(t, 25, c.Overlap())
}

func TestChunker_Split_Empty(t *testing.T) {
	c := New()
	assert.Nil(t, c.Split(""))
}

func TestChunker_Split_ShortInput(t *testing.T) {
	c := New()
	text := "Bütçe dengesi Haziran ayında fazla verdi."
	chunks := c.Split(text)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestChunker_Split_ExactSize(t *testing.T) {
	c := New(WithChunkSize(20), WithOverlap(5))
	text := strings.Repeat("a", 20)

	chunks := c.Split(text)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestChunker_Split_MaxLengthRespected(t *testing.T) {
	c := New(WithChunkSize(50), WithOverlap(10))
	text := strings.Repeat("x", 500)

	for _, chunk := range c.Split(text) {
		assert.LessOrEqual(t, len([]rune(chunk)), 50)
	}
}

func TestChunker_Split_RoundTrip(t *testing.T) {
	c := New(WithChunkSize(40), WithOverlap(8))
	text := strings.Repeat("abcdefghij", 25) // no sentence terminators

	chunks := c.Split(text)
	require.Greater(t, len(chunks), 1)

	var b strings.Builder
	b.WriteString(chunks[0])
	for _, chunk := range chunks[1:] {
		b.WriteString(string([]rune(chunk)[c.Overlap():]))
	}
	assert.Equal(t, text, b.String())
}

func TestChunker_Split_RoundTripWithSentences(t *testing.T) {
	c := New(WithChunkSize(60), WithOverlap(10))
	text := strings.Repeat("Enflasyon yüzde kırk oldu. Bütçe açığı azaldı! Ne olacak? ", 10)

	chunks := c.Split(text)
	require.Greater(t, len(chunks), 1)

	var b strings.Builder
	b.WriteString(chunks[0])
	for _, chunk := range chunks[1:] {
		b.WriteString(string([]rune(chunk)[c.Overlap():]))
	}
	assert.Equal(t, text, b.String())
}

func TestChunker_Split_SentenceBoundary(t *testing.T) {
	c := New(WithChunkSize(40), WithOverlap(5))
	// Terminator inside the second half of the first chunk: the cut
	// must land right after it instead of at the raw boundary.
	text := "First sentence ends here it is. And the rest keeps going on and on and on and on."

	chunks := c.Split(text)
	require.Greater(t, len(chunks), 1)
	assert.True(t, strings.HasSuffix(chunks[0], "."), "chunk %q should end at a sentence terminator", chunks[0])
}

func TestChunker_Split_NoBoundaryBeforeHalf(t *testing.T) {
	c := New(WithChunkSize(40), WithOverlap(5))
	// Only terminator sits inside the first half; the cut must stay at
	// the raw boundary rather than backtracking past half the chunk.
	text := "Short. " + strings.Repeat("y", 100)

	chunks := c.Split(text)
	require.Greater(t, len(chunks), 1)
	assert.Equal(t, 40, len([]rune(chunks[0])))
}

func TestChunkID_Stable(t *testing.T) {
	a := ChunkID("report.pdf", 3, "Enflasyon verileri açıklandı")
	b := ChunkID("report.pdf", 3, "Enflasyon verileri açıklandı")
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
}

func TestChunkID_DiffersByPageAndSource(t *testing.T) {
	base := ChunkID("report.pdf", 1, "same text")
	assert.NotEqual(t, base, ChunkID("report.pdf", 2, "same text"))
	assert.NotEqual(t, base, ChunkID("other.pdf", 1, "same text"))
}

func TestChunkID_OnlyPrefixMatters(t *testing.T) {
	prefix := strings.Repeat("p", 100)
	a := ChunkID("doc", 1, prefix+" tail one")
	b := ChunkID("doc", 1, prefix+" different tail")
	assert.Equal(t, a, b)
}
