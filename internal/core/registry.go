package core

import (
	"fmt"
	"strings"
	"sync"
)

// ChartKind identifies a registered chart.
type ChartKind string

// ChartInfo contains display information about a chart kind.
type ChartInfo struct {
	Kind    ChartKind // Unique identifier: "histogram"
	Label   string    // Display name and form value: "Histogram"
	Aliases []string  // Other accepted form values: "Histogramme"
	Axes    int       // Number of column parameters: 0, 1 (x) or 2 (x and y)
}

// RenderFunc draws one chart from a table.
type RenderFunc func(t *Table, req ChartRequest, s RenderSettings) (*Chart, error)

// ChartDefinition contains everything needed to draw a chart kind.
type ChartDefinition struct {
	Info   ChartInfo
	Render RenderFunc
}

var (
	chartRegistry = make(map[ChartKind]ChartDefinition)
	chartOrder    []ChartKind
	chartMu       sync.RWMutex
)

// RegisterChart adds a chart definition to the registry.
// Panics if a chart with the same kind is already registered.
func RegisterChart(def ChartDefinition) {
	chartMu.Lock()
	defer chartMu.Unlock()

	if _, exists := chartRegistry[def.Info.Kind]; exists {
		panic(fmt.Sprintf("chart already registered: %s", def.Info.Kind))
	}
	if def.Info.Label == "" {
		def.Info.Label = string(def.Info.Kind)
	}

	chartRegistry[def.Info.Kind] = def
	chartOrder = append(chartOrder, def.Info.Kind)
}

// GetChart returns a chart definition by kind.
// Returns false if not found.
func GetChart(kind ChartKind) (ChartDefinition, bool) {
	chartMu.RLock()
	defer chartMu.RUnlock()

	def, ok := chartRegistry[kind]
	return def, ok
}

// Charts returns all registered chart definitions in registration order.
func Charts() []ChartDefinition {
	chartMu.RLock()
	defer chartMu.RUnlock()

	result := make([]ChartDefinition, 0, len(chartOrder))
	for _, k := range chartOrder {
		result = append(result, chartRegistry[k])
	}
	return result
}

// ResolveChart finds the chart named by a form choice. The choice may be
// the kind, the label or an alias; matching ignores case and surrounding
// spaces.
func ResolveChart(choice string) (ChartDefinition, error) {
	want := strings.TrimSpace(choice)
	for _, def := range Charts() {
		if strings.EqualFold(want, string(def.Info.Kind)) || strings.EqualFold(want, def.Info.Label) {
			return def, nil
		}
		for _, alias := range def.Info.Aliases {
			if strings.EqualFold(want, alias) {
				return def, nil
			}
		}
	}
	return ChartDefinition{}, fmt.Errorf("%w: %q", ErrUnsupportedChart, choice)
}
