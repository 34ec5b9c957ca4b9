package pagination

import (
	"fmt"
	"maps"
	"net/url"
	"strings"
)

type relation struct {
	name   string
	cursor string
}

// linkHeader formats an RFC 8288 Link value for the listing at path. Every
// target shares base and sets its own cursor; relations without a cursor
// are left out.
func linkHeader(path string, base url.Values, rels ...relation) string {
	var b strings.Builder
	for _, r := range rels {
		if r.cursor == "" {
			continue
		}
		q := withQuery(base)
		q.Set("cursor", r.cursor)
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "<%s?%s>; rel=%q", path, q.Encode(), r.name)
	}
	return b.String()
}

// withQuery returns a copy of v that is safe to modify.
func withQuery(v url.Values) url.Values {
	if v == nil {
		return url.Values{}
	}
	return maps.Clone(v)
}
