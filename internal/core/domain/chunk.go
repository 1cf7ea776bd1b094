package domain

// ChunkType tags the origin of a retrieval unit.
type ChunkType string

const (
	ChunkTypeText  ChunkType = "text"
	ChunkTypeTable ChunkType = "table"
	ChunkTypeChart ChunkType = "chart"
)

// DocumentChunk is a bounded-length retrieval unit owned by the vector
// store. The embedding is computed once at insertion; an update is a
// delete followed by an insert, never a recompute in place.
type DocumentChunk struct {
	// ID is a content-derived hash of (source, page, leading text).
	// Identical content on the same page of the same source always
	// yields the same ID, making insertion idempotent.
	ID string `json:"id"`

	// Text is the chunk content.
	Text string `json:"text"`

	// Source identifies the originating document.
	Source string `json:"source"`

	// PageNumber is the 1-based page the chunk came from.
	PageNumber int `json:"page_number"`

	// ChunkType tags the content origin (text, table, chart).
	ChunkType ChunkType `json:"chunk_type"`

	// Metadata holds opaque display-only key/value pairs. It is never
	// part of the embedded text.
	Metadata map[string]string `json:"metadata,omitempty"`
}
