// Package services implements the driving port interfaces: document
// ingestion (consensus extraction, chart analysis, indexing) and
// question answering (retrieval, prompt assembly, confidence scoring).
// Services orchestrate calls to driven ports and never import adapters.
package services
