package core

import (
	"fmt"
	"strings"
)

// normalizeHeaders names blank headers "Unnamed: i" and renames repeated
// headers to "name.1", "name.2", ... so every column is addressable.
func normalizeHeaders(raw []string) []string {
	out := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	taken := make(map[string]bool, len(raw))
	for _, h := range raw {
		taken[h] = true
	}

	for i, h := range raw {
		if strings.TrimSpace(h) == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}

		name := h
		if n, dup := seen[h]; dup {
			for {
				n++
				name = fmt.Sprintf("%s.%d", h, n)
				if !taken[name] {
					break
				}
			}
			seen[h] = n
		} else {
			seen[h] = 0
		}

		taken[name] = true
		out[i] = name
	}
	return out
}
