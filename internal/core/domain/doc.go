// Package domain contains the core types of the finrag pipeline:
// extracted page records, chart records, document chunks, search results
// and the persisted analysis artifact. Types here have no dependencies
// on adapters or services.
package domain
