package journal

import (
	"bytes"
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/rustyeddy/rtracker/stats"
)

// RenderEquityChart renders the balance curve as a PNG line chart with a
// dashed line at the target balance. Returns raw PNG bytes.
func RenderEquityChart(curve []stats.Point, targetBalance float64) ([]byte, error) {
	if len(curve) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(curve))
	}

	xValues := make([]float64, len(curve))
	balanceY := make([]float64, len(curve))
	targetY := make([]float64, len(curve))

	for i, p := range curve {
		xValues[i] = float64(p.Index)
		balanceY[i] = p.Balance
		targetY[i] = targetBalance
	}

	balanceSeries := chart.ContinuousSeries{
		Name: "Balance",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("58a6ff"),
			FillColor:   drawing.ColorFromHex("58a6ff").WithAlpha(25),
			StrokeWidth: 2,
		},
		XValues: xValues,
		YValues: balanceY,
	}

	targetSeries := chart.ContinuousSeries{
		Name: "Target",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("10b981"),
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: xValues,
		YValues: targetY,
	}

	graph := chart.Chart{
		Title:  "Equity Curve",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name: "Trade",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			balanceSeries,
			targetSeries,
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteEquityChart renders the chart to path.
func WriteEquityChart(path string, curve []stats.Point, targetBalance float64) error {
	png, err := RenderEquityChart(curve, targetBalance)
	if err != nil {
		return err
	}
	return os.WriteFile(path, png, 0644)
}
