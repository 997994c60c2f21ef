package core

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	table, err := LoadCSV(strings.NewReader("name,age\nJohn Smith,42\n  Ann  Lee ,7\nNA,1\n"))
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}

	Clean(table)

	name, _ := table.Column("name")
	want := []string{"John", "Ann"}
	for i, w := range want {
		if name.Texts[i] != w {
			t.Errorf("name[%d] = %q, want %q", i, name.Texts[i], w)
		}
	}
	if !name.Missing(2) {
		t.Error("missing value should stay missing")
	}

	age, _ := table.Column("age")
	if age.Floats[0] != 42 {
		t.Errorf("numeric column changed: %v", age.Floats)
	}
}

func TestClean_Idempotent(t *testing.T) {
	table, err := LoadCSV(strings.NewReader("v\nfoo bar baz\nqux\n"))
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}

	Clean(table)
	first := strings.Join(table.Row(0), ",")
	Clean(table)
	second := strings.Join(table.Row(0), ",")

	if first != "foo" || second != first {
		t.Errorf("Clean twice: %q then %q, want %q", first, second, "foo")
	}
}

func TestFirstToken(t *testing.T) {
	tests := map[string]string{
		"John Smith":    "John",
		"  leading":     "leading",
		"tab\tseparated": "tab",
		"single":        "single",
		"   ":           "",
		"a b":      "a",
	}
	for in, want := range tests {
		if got := firstToken(in); got != want {
			t.Errorf("firstToken(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClean_NilTable(t *testing.T) {
	Clean(nil)
}
