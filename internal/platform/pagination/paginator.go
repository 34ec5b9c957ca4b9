package pagination

import (
	"net/url"
	"strconv"
)

// Page is one slice of a listing.
type Page[T any] struct {
	Items []T
	Total int
	Next  string
	Prev  string
	// Link is the RFC 8288 header value, empty on a single-page listing.
	Link string
}

// Request describes which page to cut.
type Request struct {
	Kind   string
	Cursor Cursor
	Limit  int
	// Path and Query are used to build Link targets; Query keeps filters.
	Path  string
	Query url.Values
}

// Paginate returns the page of items following req.Cursor. key must be
// unique across items.
func Paginate[T any](items []T, key func(T) string, req Request) (Page[T], error) {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	start := 0
	if req.Cursor.After != "" {
		start = -1
		for i, item := range items {
			if key(item) == req.Cursor.After {
				start = i + 1
				break
			}
		}
		if start < 0 {
			return Page[T]{}, ErrInvalidCursor
		}
	}
	end := min(start+limit, len(items))

	page := Page[T]{Items: items[start:end], Total: len(items)}
	if end < len(items) {
		page.Next = Cursor{Kind: req.Kind, After: key(items[end-1])}.Encode()
	}
	if start > 0 {
		prev := Cursor{Kind: req.Kind}
		if start > limit {
			prev.After = key(items[start-limit-1])
		}
		page.Prev = prev.Encode()
	}

	q := withQuery(req.Query)
	q.Del("cursor")
	q.Set("limit", strconv.Itoa(limit))
	page.Link = linkHeader(req.Path, q, relation{"next", page.Next}, relation{"prev", page.Prev})
	return page, nil
}
