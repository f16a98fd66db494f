// Package listing filters and pages list mirrors fetched from the backend.
package listing

import (
	"slices"
	"strings"
)

// Searchable entries expose the text the search box matches against.
type Searchable interface {
	SearchText() string
}

// EntryOptions are the page sizes offered to the operator.
var EntryOptions = []int{5, 10, 25}

const DefaultEntries = 10

// Filter keeps entries whose search text contains query, ignoring case, and
// that satisfy every predicate. An empty query matches everything.
func Filter[T Searchable](entries []T, query string, preds ...func(T) bool) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		if q != "" && !strings.Contains(strings.ToLower(e.SearchText()), q) {
			continue
		}
		if !all(e, preds) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func all[T any](e T, preds []func(T) bool) bool {
	for _, p := range preds {
		if p != nil && !p(e) {
			return false
		}
	}
	return true
}

// Page is one slice of a filtered list.
type Page[T any] struct {
	Entries    []T `json:"entries"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
	Total      int `json:"total"`
}

// Entries maps a requested page size onto EntryOptions.
func Entries(n int) int {
	if slices.Contains(EntryOptions, n) {
		return n
	}
	return DefaultEntries
}

// Paginate returns page (1-based) of entries. Out-of-range pages are clamped;
// an empty list still has one (empty) page.
func Paginate[T any](entries []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = DefaultEntries
	}
	pages := (len(entries) + perPage - 1) / perPage
	if pages == 0 {
		pages = 1
	}
	page = min(max(page, 1), pages)

	start := (page - 1) * perPage
	end := min(start+perPage, len(entries))
	return Page[T]{
		Entries:    slices.Clone(entries[start:end]),
		Page:       page,
		PerPage:    perPage,
		TotalPages: pages,
		Total:      len(entries),
	}
}
