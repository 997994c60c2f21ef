// Package chart renders chart data into images and embeddable markup.
//
// Every function takes plain values and returns a fresh result object, so
// no drawing state survives between calls. Static charts are PNG encoded
// with go-chart; the scatter plot is an echarts document from go-echarts.
package chart

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// MIMEPNG is the content type of every static chart.
const MIMEPNG = "image/png"

// ErrNoData is returned when a chart is asked to draw nothing.
var ErrNoData = errors.New("chart: no data to draw")

// Options controls the canvas of a static chart.
type Options struct {
	Width  int
	Height int
}

// DefaultOptions is used when a caller passes a zero Options.
var DefaultOptions = Options{Width: 1000, Height: 600}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultOptions.Width
	}
	if o.Height <= 0 {
		o.Height = DefaultOptions.Height
	}
	return o
}

// Image is an encoded raster chart.
type Image struct {
	MIME string
	Data []byte
}

// Base64 returns the standard base64 text of the image bytes.
func (i *Image) Base64() string {
	if i == nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(i.Data)
}

// DataURL returns the image as a data: URL suitable for an <img> src.
func (i *Image) DataURL() string {
	if i == nil {
		return ""
	}
	return "data:" + i.MIME + ";base64," + i.Base64()
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// FileName builds an ASCII download name such as "histogram_prix_ttc.png"
// from a chart kind and the columns it draws.
func FileName(kind, ext string, columns ...string) string {
	parts := []string{kind}
	for _, c := range columns {
		s := strings.ToLower(unidecode.Unidecode(c))
		s = strings.Trim(nonSlug.ReplaceAllString(s, "_"), "_")
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "_") + "." + ext
}

// Shared palette.
var (
	barColor    = drawing.Color{R: 31, G: 119, B: 180, A: 255}
	barFill     = drawing.Color{R: 31, G: 119, B: 180, A: 180}
	gridColor   = drawing.ColorFromHex("efefef")
	canvasStyle = gochart.Style{
		FillColor:   drawing.ColorWhite,
		StrokeColor: gridColor,
		StrokeWidth: 1,
	}
)
