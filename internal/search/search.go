// Package search provides free-text search over a user collection using
// Roaring bitmap token indexes.
//
// The index is built per call from the collection handed in. The store is
// stateless between operations, so there is no long-lived index to keep in
// sync with the document; for collections of this size a throwaway index is
// cheaper than an invalidation protocol.
package search

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/mcp-tg/sever-template/internal/userstore"
)

// Result holds search matches in insertion order.
type Result struct {
	Records      []userstore.Record
	TotalMatches int
	Truncated    bool
}

// Engine executes token-AND searches over user records.
type Engine struct {
	maxResults int
}

// New creates a search engine. maxResults caps TotalMatches accounting and
// result slices regardless of the caller's limit.
func New(maxResults int) *Engine {
	return &Engine{maxResults: maxResults}
}

// Search tokenizes the query and returns records matching every token in
// either name or email, preserving collection order. An empty or
// all-too-short query matches nothing.
func (e *Engine) Search(records []userstore.Record, query string, limit int) *Result {
	result := &Result{Records: []userstore.Record{}}

	terms := Tokenize(query)
	if len(terms) == 0 {
		return result
	}

	index := buildIndex(records)

	// AND all query terms; a term absent from the index empties the result.
	var matched *roaring.Bitmap
	for _, term := range terms {
		bm, ok := index[term]
		if !ok {
			return result
		}
		if matched == nil {
			matched = bm.Clone()
		} else {
			matched.And(bm)
		}
	}
	if matched == nil || matched.IsEmpty() {
		return result
	}

	result.TotalMatches = int(matched.GetCardinality())
	if result.TotalMatches > e.maxResults {
		result.TotalMatches = e.maxResults
	}

	if limit <= 0 || limit > e.maxResults {
		limit = e.maxResults
	}

	// Roaring iterates ascending doc IDs, which is insertion order here.
	it := matched.Iterator()
	for it.HasNext() {
		if len(result.Records) >= limit {
			result.Truncated = true
			break
		}
		result.Records = append(result.Records, records[it.Next()])
	}

	return result
}

// buildIndex maps each token to the bitmap of record positions containing it.
func buildIndex(records []userstore.Record) map[string]*roaring.Bitmap {
	index := make(map[string]*roaring.Bitmap)
	for i, r := range records {
		doc := uint32(i)
		for _, tok := range Tokenize(r.Name) {
			addToken(index, tok, doc)
		}
		for _, tok := range Tokenize(r.Email) {
			addToken(index, tok, doc)
		}
	}
	return index
}

func addToken(index map[string]*roaring.Bitmap, token string, doc uint32) {
	bm, ok := index[token]
	if !ok {
		bm = roaring.New()
		index[token] = bm
	}
	bm.Add(doc)
}
