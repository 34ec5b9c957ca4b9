// Package pagination pages in-memory listings with opaque cursors and RFC
// 8288 Link headers.
package pagination

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidCursor is returned for cursors that are malformed, belong to
// another listing or point at an item that no longer exists.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor is the position after which the next page starts. Kind ties the
// cursor to one listing so a template cursor cannot page profiles.
type Cursor struct {
	Kind  string
	After string
}

// Encode returns the URL-safe opaque form.
func (c Cursor) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(c.Kind + "|" + c.After))
}

// DecodeCursor parses s and checks that it was issued for kind. An empty s
// is the first page.
func DecodeCursor(s, kind string) (Cursor, error) {
	if s == "" {
		return Cursor{Kind: kind}, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	k, after, ok := strings.Cut(string(raw), "|")
	if !ok || k != kind {
		return Cursor{}, ErrInvalidCursor
	}
	return Cursor{Kind: k, After: after}, nil
}
