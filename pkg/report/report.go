// Package report renders an interactive HTML scatter chart of all
// loaded datasets, one series per dataset, as a companion to the
// static PDF figures.
package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"neurodensity/internal/models"
)

// WriteScatterHTML writes a self-contained HTML scatter chart to w.
// Axis ranges follow the configured plot limits so the chart matches
// the PDF figures.
func WriteScatterHTML(w io.Writer, datasets []models.Dataset, lims models.Bounds) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Neuron positions", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Neuron positions", Subtitle: fmt.Sprintf("datasets=%d", len(datasets))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: lims.XMin, Max: lims.XMax, Name: "X (µm)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: lims.YMin, Max: lims.YMax, Name: "Y (µm)", NameLocation: "middle", NameGap: 30}),
	)

	for _, ds := range datasets {
		if len(ds.Points) == 0 {
			continue
		}
		data := make([]opts.ScatterData, 0, len(ds.Points))
		for _, p := range ds.Points {
			data = append(data, opts.ScatterData{Value: []interface{}{p.X, p.Y}})
		}
		scatter.AddSeries(ds.Name, data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))
	}

	return scatter.Render(w)
}
