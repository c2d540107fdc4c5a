// internal/capability/search/search.go
package search

import "context"

// Hit is one ranked search result used for research grounding.
type Hit struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// Searcher is the search capability boundary.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Hit, error)
}
