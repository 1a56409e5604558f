// Package search ranks an indexed product corpus against structured
// query intents.
//
// Three strategies are available. Lexical search scores BM25 over the
// intent's keyword and expansion terms and only returns documents that
// match at least one term. Dense search scores cosine similarity
// between the query embedding and every embedded document, and always
// fills the requested depth when the corpus allows. Hybrid search
// normalizes both score lists by their maxima and combines them with a
// configurable dense weight.
//
// Structured filters from the intent restrict the candidate universe
// before any scoring. Score ties always resolve to original corpus
// order.
package search
