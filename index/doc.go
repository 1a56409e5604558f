// Package index builds the searchable corpus snapshot: a lexical
// inverted index and a dense embedding matrix over a product catalog.
//
// The two structures are position-aligned with the input corpus so
// ranking can always fall back to original corpus order for ties.
// Embedding runs concurrently on a worker pool; per-product failures
// degrade that product to lexical-only rather than failing the build.
package index
