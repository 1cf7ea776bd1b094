// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): PDF page sources, page renderers, OCR,
// embedding and completion services, the vector store and the artifact
// store. Services depend on these interfaces, never on adapters.
package driven
