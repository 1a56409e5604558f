// Package rerank reorders retrieval candidates with a second model
// pass.
//
// Two strategies are provided. CrossEncoder scores each candidate
// against the query independently and sorts by the scores.
// SelectorReranker asks a generative model for a complete preferred
// ordering plus a single top pick with a rationale.
//
// Both strategies degrade rather than fail: after one retry a provider
// error yields the input order with the result's Fallback flag set.
package rerank
