package core

import (
	"errors"
	"testing"
)

func TestCharts_Order(t *testing.T) {
	want := []ChartKind{ChartHistogram, ChartScatter, ChartKDE, ChartHeatmap}
	got := Charts()
	if len(got) != len(want) {
		t.Fatalf("len(Charts()) = %d, want %d", len(got), len(want))
	}
	for i, k := range want {
		if got[i].Info.Kind != k {
			t.Errorf("Charts()[%d] = %s, want %s", i, got[i].Info.Kind, k)
		}
	}
}

func TestResolveChart(t *testing.T) {
	tests := []struct {
		choice string
		want   ChartKind
	}{
		{choice: "Histogram", want: ChartHistogram},
		{choice: "Histogramme", want: ChartHistogram},
		{choice: "histogram", want: ChartHistogram},
		{choice: "Scatter Plot", want: ChartScatter},
		{choice: " scatter ", want: ChartScatter},
		{choice: "KDE Plot", want: ChartKDE},
		{choice: "Heatmap", want: ChartHeatmap},
	}
	for _, tt := range tests {
		t.Run(tt.choice, func(t *testing.T) {
			def, err := ResolveChart(tt.choice)
			if err != nil {
				t.Fatalf("ResolveChart() error = %v", err)
			}
			if def.Info.Kind != tt.want {
				t.Errorf("ResolveChart(%q) = %s, want %s", tt.choice, def.Info.Kind, tt.want)
			}
		})
	}
}

func TestResolveChart_Unknown(t *testing.T) {
	for _, choice := range []string{"", "Pie", "bar chart"} {
		if _, err := ResolveChart(choice); !errors.Is(err, ErrUnsupportedChart) {
			t.Errorf("ResolveChart(%q) error = %v, want ErrUnsupportedChart", choice, err)
		}
	}
}

func TestRegisterChart_DuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	RegisterChart(ChartDefinition{Info: ChartInfo{Kind: ChartHeatmap}})
}

func TestGetChart(t *testing.T) {
	def, ok := GetChart(ChartKDE)
	if !ok || def.Info.Axes != 1 || def.Render == nil {
		t.Errorf("GetChart(kde) = %+v, %v", def.Info, ok)
	}
	if _, ok := GetChart("pie"); ok {
		t.Error("GetChart(pie) found an unregistered chart")
	}
}
