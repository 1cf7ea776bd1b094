// Package chunker splits extracted text into overlapping retrieval
// units with stable, content-derived identifiers.
package chunker

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 500

// DefaultOverlap is the default number of overlapping characters
// between consecutive chunks.
const DefaultOverlap = 50

// idPrefixLen is how many leading characters of a chunk participate in
// its identifier.
const idPrefixLen = 100

// Chunker splits text into bounded, overlapping pieces. Sizes are in
// characters (runes), not bytes, so multi-byte Turkish text is never
// split mid-rune.
type Chunker struct {
	size    int
	overlap int
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithChunkSize sets the maximum chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.size = size
		}
	}
}

// WithOverlap sets the overlap between consecutive chunks.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		size:    DefaultChunkSize,
		overlap: DefaultOverlap,
	}
	for _, opt := range opts {
		opt(c)
	}

	// Overlap must leave room for forward progress.
	if c.overlap >= c.size {
		c.overlap = c.size / 4
	}
	return c
}

// Size returns the configured chunk size.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int { return c.overlap }

// Split cuts text into pieces of at most the chunk size, sharing the
// configured overlap between consecutive pieces. When a cut would fall
// mid-sentence, the boundary moves back to the nearest sentence
// terminator, but never further back than half the chunk size. Text
// that already fits in one chunk is returned unchanged.
func (c *Chunker) Split(text string) []string {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= c.size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + c.size
		if end >= len(runes) {
			end = len(runes)
		} else {
			for i := end - 1; i > start+c.size/2; i-- {
				if r := runes[i]; r == '.' || r == '!' || r == '?' {
					end = i + 1
					break
				}
			}
		}

		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}

		next := end - c.overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return chunks
}

// ChunkID derives a stable identifier from the chunk's source document,
// page number and first characters of its text. Identical content on
// the same page of the same source always yields the same ID.
func ChunkID(source string, pageNumber int, text string) string {
	prefix := []rune(text)
	if len(prefix) > idPrefixLen {
		prefix = prefix[:idPrefixLen]
	}
	sum := md5.Sum([]byte(fmt.Sprintf("%s_%d_%s", source, pageNumber, string(prefix))))
	return hex.EncodeToString(sum[:])
}
