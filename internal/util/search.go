package util

import (
	"regexp"
	"strings"
)

// SearchQuery represents the parsed components of a search string.
type SearchQuery struct {
	Type []string
	Text string
}

var typeRegex = regexp.MustCompile(`type:(\w+)`)

// ParseSearchQuery splits "type:strength leg day" into type filters and the
// remaining free-text phrase. Everything is lower-cased.
func ParseSearchQuery(query string) SearchQuery {
	query = strings.ToLower(query)
	sq := SearchQuery{}
	for _, match := range typeRegex.FindAllStringSubmatch(query, -1) {
		sq.Type = append(sq.Type, match[1])
	}
	query = typeRegex.ReplaceAllString(query, "")
	sq.Text = strings.Join(strings.Fields(query), " ")
	return sq
}

// Empty reports whether the query matches everything.
func (q SearchQuery) Empty() bool {
	return len(q.Type) == 0 && q.Text == ""
}

// Matches reports whether an entry of the given kind with the given text
// fields satisfies the query. Type filters must all equal kind; the phrase
// must appear in at least one field or in kind itself.
func (q SearchQuery) Matches(kind string, fields ...string) bool {
	kind = strings.ToLower(kind)
	for _, t := range q.Type {
		if t != kind {
			return false
		}
	}
	if q.Text == "" {
		return true
	}
	if strings.Contains(kind, q.Text) {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q.Text) {
			return true
		}
	}
	return false
}
