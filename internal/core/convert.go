package core

// convert.go decides what a raw cell means: missing, a number, or text.
//
// The missing markers follow the conventions of common CSV exporters
// (spreadsheets, R, pandas): an empty cell, NA, NaN, NULL, None, #N/A and
// their usual spellings.

import (
	"math"
	"strconv"
	"strings"
)

var missingMarkers = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"n/a":  true,
	"#N/A": true,
	"NaN":  true,
	"nan":  true,
	"-NaN": true,
	"-nan": true,
	"NULL": true,
	"null": true,
	"None": true,
	"<NA>": true,
}

// IsMissing reports whether a raw cell stands for a missing value.
func IsMissing(raw string) bool {
	return missingMarkers[strings.TrimSpace(raw)]
}

// ParseNumber parses a raw cell as a finite or infinite float.
// Surrounding spaces are ignored. Missing markers do not parse.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if missingMarkers[s] {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// isWhole reports whether v is an integer value.
func isWhole(v float64) bool {
	return !math.IsInf(v, 0) && v == math.Trunc(v)
}

// buildColumn infers the kind of a column from its raw cells and converts
// them. A column is numeric when every present cell parses as a number;
// a column with no present cells is numeric too.
func buildColumn(name string, raw []string) *Column {
	floats := make([]float64, len(raw))
	integer := true
	numeric := true
	for i, cell := range raw {
		if IsMissing(cell) {
			floats[i] = math.NaN()
			continue
		}
		v, ok := ParseNumber(cell)
		if !ok {
			numeric = false
			break
		}
		floats[i] = v
		if !isWhole(v) {
			integer = false
		}
	}

	if numeric {
		return &Column{Name: name, Kind: KindNumeric, Integer: integer, Floats: floats}
	}

	texts := make([]string, len(raw))
	null := make([]bool, len(raw))
	for i, cell := range raw {
		if IsMissing(cell) {
			null[i] = true
			continue
		}
		texts[i] = cell
	}
	return &Column{Name: name, Kind: KindText, Texts: texts, Null: null}
}
