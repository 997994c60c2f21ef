package core

import (
	"strings"
	"testing"
)

func TestNormalizeHeaders(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "unique", in: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "duplicates", in: []string{"a", "a", "a"}, want: []string{"a", "a.1", "a.2"}},
		{name: "blank", in: []string{"", "b", " "}, want: []string{"Unnamed: 0", "b", "Unnamed: 2"}},
		{name: "suffix already taken", in: []string{"a", "a.1", "a"}, want: []string{"a", "a.1", "a.2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeHeaders(tt.in)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("normalizeHeaders(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
