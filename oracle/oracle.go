// Package oracle defines the external services the editor consults for words, categories,
// phrases and titles, with an HTTP client, an HTTP server and an offline implementation.
package oracle

import (
	"context"
	"slices"
	"strings"
)

// Item is one node sent for clustering.
type Item struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Category is one group returned by clustering.
type Category struct {
	Name string   `json:"name"`
	IDs  []string `json:"ids"`
}

// Oracle is the set of opaque services used by the editor. Implementations must honour
// ctx cancellation.
type Oracle interface {
	// Expand returns up to count distinct short phrases associated with source, none of
	// which appear in exclude.
	Expand(ctx context.Context, source string, count int, exclude []string) ([]string, error)
	// Cluster groups items into named categories. Items may be left out.
	Cluster(ctx context.Context, items []Item) ([]Category, error)
	// Extract turns free text into a list of short phrases.
	Extract(ctx context.Context, text string) ([]string, error)
	// SuggestTitle names a group of phrases.
	SuggestTitle(ctx context.Context, phrases []string) (string, error)
}

// Violation records an id the clustering oracle placed in more than one category.
type Violation struct {
	ID    string
	Kept  string
	Moved []string
}

// Normalize enforces one category per id. When an id is listed more than once the last
// listing wins and a Violation is reported. Empty categories are dropped; the order of
// categories and members is otherwise preserved.
func Normalize(cats []Category) ([]Category, []Violation) {
	owner := make(map[string]int)
	seen := make(map[string][]string)
	for i, c := range cats {
		for _, id := range c.IDs {
			if prev, ok := owner[id]; ok && prev != i {
				seen[id] = append(seen[id], cats[prev].Name)
			}
			owner[id] = i
		}
	}

	var violations []Violation
	for id, moved := range seen {
		violations = append(violations, Violation{ID: id, Kept: cats[owner[id]].Name, Moved: moved})
	}
	slices.SortFunc(violations, func(a, b Violation) int { return strings.Compare(a.ID, b.ID) })

	var out []Category
	for i, c := range cats {
		var ids []string
		dup := make(map[string]bool, len(c.IDs))
		for _, id := range c.IDs {
			if owner[id] != i || dup[id] {
				continue
			}
			dup[id] = true
			ids = append(ids, id)
		}
		if len(ids) > 0 {
			out = append(out, Category{Name: c.Name, IDs: ids})
		}
	}
	return out, violations
}

// Distinct trims phrases and drops empty ones, case-insensitive duplicates and anything
// in exclude. At most limit phrases are returned; limit <= 0 means no limit.
func Distinct(phrases, exclude []string, limit int) []string {
	skip := make(map[string]bool, len(exclude)+len(phrases))
	for _, e := range exclude {
		skip[strings.ToLower(strings.TrimSpace(e))] = true
	}

	var out []string
	for _, p := range phrases {
		p = strings.TrimSpace(p)
		key := strings.ToLower(p)
		if p == "" || skip[key] {
			continue
		}
		skip[key] = true
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
