// Package plot renders clustering results as interactive scatter charts.
//
// The output is a self-contained HTML page produced by go-echarts with one
// series per cluster and a "means" series on top.
package plot

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/point"
)

// MeansSeries is the name of the series holding the cluster means.
const MeansSeries = "means"

const (
	pointSize = 8
	meanSize  = 18
)

// SeriesName returns the series name used for cluster i.
func SeriesName(i int) string {
	return fmt.Sprintf("Cluster %d", i)
}

func scatterData(pts []point.Point, symbol string, size int) []opts.ScatterData {
	out := make([]opts.ScatterData, len(pts))
	for i, p := range pts {
		out[i] = opts.ScatterData{
			Value:      []interface{}{p.X, p.Y},
			Symbol:     symbol,
			SymbolSize: size,
		}
	}
	return out
}

// Scatter builds the chart for the given groups and their means.
func Scatter(title string, groups [][]point.Point, means []point.Point) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: pointer(true)}),
		charts.WithLegendOpts(opts.Legend{Show: pointer(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "x"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "y"}),
	)

	for i, g := range groups {
		scatter.AddSeries(SeriesName(i), scatterData(g, "circle", pointSize)).
			SetSeriesOptions(
				charts.WithLabelOpts(opts.Label{Show: pointer(false)}),
			)
	}
	if len(means) > 0 {
		scatter.AddSeries(MeansSeries, scatterData(means, "diamond", meanSize)).
			SetSeriesOptions(
				charts.WithLabelOpts(opts.Label{Show: pointer(false)}),
			)
	}
	return scatter
}

// Render writes the HTML chart to w.
func Render(w io.Writer, title string, groups [][]point.Point, means []point.Point) error {
	return Scatter(title, groups, means).Render(w)
}

// Save renders the chart and stores it under name.
func Save(ctx context.Context, store blobstore.BlobStore, name, title string, groups [][]point.Point, means []point.Point) error {
	var buf bytes.Buffer
	if err := Render(&buf, title, groups, means); err != nil {
		return fmt.Errorf("plot: render %s: %w", name, err)
	}
	return store.Put(ctx, name, buf.Bytes())
}

func pointer(b bool) *bool {
	return &b
}
