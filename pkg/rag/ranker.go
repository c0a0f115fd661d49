// FILE: pkg/rag/ranker.go
// PURPOSE: Naive lexical ranking of the document set against a query

package rag

import (
	"sort"
	"strings"
)

// TopK is the maximum number of documents a ranking returns.
const TopK = 5

// Rank scores every document by the number of distinct query tokens
// contained anywhere in its lowercased text. Each matching token counts
// once no matter how often it occurs. Zero-score documents are dropped and
// the rest are sorted descending, stable on ties, truncated to TopK.
//
// Pure function of its inputs.
func Rank(docs []Document, query string) []Document {
	tokens := tokenize(query)
	if len(tokens) == 0 || len(docs) == 0 {
		return nil
	}

	scored := make([]Document, 0, len(docs))
	for _, doc := range docs {
		text := strings.ToLower(doc.Text)
		score := 0
		for _, token := range tokens {
			if strings.Contains(text, token) {
				score++
			}
		}
		if score == 0 {
			continue
		}
		doc.Score = score
		scored = append(scored, doc)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > TopK {
		scored = scored[:TopK]
	}
	return scored
}

// tokenize lowercases and whitespace-splits the query, deduplicating tokens
// so repeated words cannot inflate a score.
func tokenize(query string) []string {
	words := strings.Fields(strings.ToLower(query))
	seen := make(map[string]bool, len(words))
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if word == "" || seen[word] {
			continue
		}
		seen[word] = true
		tokens = append(tokens, word)
	}
	return tokens
}
