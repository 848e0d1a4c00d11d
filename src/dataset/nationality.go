package dataset

import (
	"sort"
	"strings"
)

// ParseNationalities normalizes a raw origin string into a set of atomic
// nationality tokens. The museum metadata is messy: multiple artists are
// pipe-delimited, individual entries carry biography qualifiers ("born
// Austria", "active France", a trailing "?"), and some pairs are joined
// with "and", hyphens, or commas. This is a fixed normalization policy, not
// ground truth; it is intentionally order-dependent.
func ParseNationalities(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	seen := map[string]struct{}{}
	var out []string
	add := func(tok string) {
		tok = strings.TrimSpace(tok)
		tok = strings.TrimSuffix(tok, "?")
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return
		}
		if tok == "English" {
			tok = "British"
		}
		if _, dup := seen[tok]; dup {
			return
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	for _, segment := range strings.Split(raw, "|") {
		segment = strings.TrimSpace(segment)
		segment = stripQualifier(segment)
		// "Scottish and French", "Austrian-American", "German, British"
		for _, part := range strings.Split(segment, " and ") {
			for _, p := range strings.FieldsFunc(part, func(r rune) bool { return r == '-' || r == ',' }) {
				add(p)
			}
		}
	}
	return out
}

// stripQualifier removes parenthesized or trailing biography qualifiers
// such as "born Austria", "active France", "(born 1850)".
func stripQualifier(s string) string {
	if i := strings.IndexAny(s, "(["); i >= 0 {
		s = s[:i]
	}
	for _, q := range []string{", born ", " born ", ", active ", " active "} {
		if i := strings.Index(s, q); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}

// UniqueNationalities returns the sorted set of nationality tokens observed
// across all records; used to populate the filter dropdowns.
func UniqueNationalities(records []PhotoRecord) []string {
	set := map[string]struct{}{}
	for _, r := range records {
		for _, n := range ParseNationalities(r.RawNationality) {
			set[n] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
