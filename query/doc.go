// Package query turns raw search queries into structured intents.
//
// The service wraps an ai.QueryUnderstander with a per-attempt timeout
// and a single retry. When the provider still fails, the service
// degrades to the deterministic fallback intent (whitespace keywords,
// no filters, relevance sort) and flags the result as degraded instead
// of returning an error. Downstream retrieval therefore always has a
// well-formed intent to work with.
package query
