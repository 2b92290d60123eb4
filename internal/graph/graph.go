// Package graph turns a day's score sequence into summary statistics and
// a PNG line chart. It never touches storage: input is a plain sequence,
// output is numbers or image bytes.
package graph

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Summary aggregates a non-empty score sequence.
type Summary struct {
	Count int
	Mean  float64
	Max   float64
	Min   float64
}

// Summarize computes stats over scores. The sequence must be non-empty;
// callers treat an empty day as a "no data" condition before calling.
func Summarize(scores []float64) Summary {
	s := Summary{Count: len(scores), Max: scores[0], Min: scores[0]}
	var sum float64
	for _, v := range scores {
		sum += v
		if v > s.Max {
			s.Max = v
		}
		if v < s.Min {
			s.Min = v
		}
	}
	s.Mean = sum / float64(len(scores))
	return s
}

// Render plots scores in submission order (x = 1..N, equidistant regardless
// of submission times) with the y-axis fixed to the rating scale, and
// returns the PNG bytes.
func Render(scores []float64, day time.Time) ([]byte, error) {
	xValues := make([]float64, len(scores))
	for i := range scores {
		xValues[i] = float64(i + 1)
	}

	mainSeries := chart.ContinuousSeries{
		XValues: xValues,
		YValues: scores,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("1f77b4"),
			StrokeWidth: 2,
			DotWidth:    4,
			DotColor:    drawing.ColorFromHex("1f77b4"),
		},
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Настроение за %s", day.Format("02.01.2006")),
		Width:  800,
		Height: 480,
		XAxis: chart.XAxis{
			Name: "Измерение",
			// Explicit range keeps a single measurement renderable.
			Range: &chart.ContinuousRange{Min: 0, Max: float64(len(scores)) + 1},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.ColorFromHex("e0e0e0"),
				StrokeWidth: 1,
			},
		},
		YAxis: chart.YAxis{
			Name:  "Оценка (0-10)",
			Range: &chart.ContinuousRange{Min: 0, Max: 10.5},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.ColorFromHex("e0e0e0"),
				StrokeWidth: 1,
			},
		},
		Series: []chart.Series{mainSeries},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
