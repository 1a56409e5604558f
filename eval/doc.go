// Package eval measures retrieval quality against labeled cases.
//
// Each case pairs a query with the product ids a correct system should
// return. The evaluator runs the configured retrieval strategies at
// several ranking depths and aggregates hit rate, precision, recall,
// and F1. Cases with partial "hint" labels only contribute to the hit
// rate. Cases without labels, invalid cases, and cases whose searches
// fail are counted as unscored, so the scored and unscored counts
// always add up to the total.
package eval
