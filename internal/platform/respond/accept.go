package respond

import (
	"strconv"
	"strings"
)

type mediaRange struct {
	typ     string
	subtype string
	q       float64
}

// parseAccept splits an Accept header into media ranges. Malformed or
// out-of-range q values count as 1.
func parseAccept(header string) []mediaRange {
	var out []mediaRange
	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		params := strings.Split(part, ";")
		mr := mediaRange{q: 1}
		typ, sub, ok := strings.Cut(strings.ToLower(strings.TrimSpace(params[0])), "/")
		if !ok {
			sub = "*"
		}
		mr.typ, mr.subtype = typ, sub
		for _, p := range params[1:] {
			k, v, _ := strings.Cut(strings.TrimSpace(p), "=")
			if strings.ToLower(strings.TrimSpace(k)) != "q" {
				continue
			}
			if q, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && q >= 0 && q <= 1 {
				mr.q = q
			}
		}
		out = append(out, mr)
	}
	return out
}

// preferCBOR reports whether the client ranks CBOR strictly above JSON.
// Each format takes the q value of its most specific matching range; ties,
// wildcards and unknown types go to JSON.
func preferCBOR(header string) bool {
	ranges := parseAccept(header)
	cborQ := formatQ(ranges, "cbor")
	jsonQ := formatQ(ranges, "json")
	return cborQ > 0 && cborQ > jsonQ
}

func formatQ(ranges []mediaRange, format string) float64 {
	best, q := 0, 0.0
	for _, r := range ranges {
		s := specificity(r, format)
		if s > best {
			best, q = s, r.q
		}
	}
	return q
}

// specificity ranks how closely r names format; 0 means no match.
func specificity(r mediaRange, format string) int {
	switch {
	case r.typ == "application" && (r.subtype == format || r.subtype == "problem+"+format):
		return 4
	case r.typ == "application" && r.subtype == "*+"+format:
		return 3
	case r.typ == "application" && r.subtype == "*":
		return 2
	case r.typ == "*" && r.subtype == "*":
		return 1
	default:
		return 0
	}
}
