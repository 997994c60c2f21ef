package core

import (
	"strings"
	"unicode"
)

// Clean applies the first-token heuristic to every textual column in place:
// each present value is replaced by its first whitespace-delimited token.
//
// The heuristic copes with exports where several logical fields ended up
// concatenated into one cell ("John Smith 42" becomes "John"). It is lossy
// and only approximately right. Missing entries and numeric columns are left
// untouched; a value made only of whitespace becomes the empty string.
// Clean is idempotent.
func Clean(t *Table) {
	if t == nil {
		return
	}
	for _, c := range t.Columns {
		if c.Kind != KindText {
			continue
		}
		for i, v := range c.Texts {
			if c.Null[i] {
				continue
			}
			c.Texts[i] = firstToken(v)
		}
	}
}

func firstToken(s string) string {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		return s[:i]
	}
	return s
}
