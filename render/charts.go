package render

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/absmach/fedwatch/snapshot"
)

// Dashboard renders the server-side HTML dashboard: headline gauges for
// the current view and a line chart of model scores over history. History
// records are expected newest-first and are replayed chronologically.
func Dashboard(w io.Writer, view snapshot.View, history snapshot.HistoryPage) error {
	page := components.NewPage()
	page.PageTitle = "Federated Training Dashboard"
	page.SetLayout(components.PageFlexLayout)

	banner := TrainFirstNotice
	if view.Status != nil {
		banner = Banner(*view.Status)
	}

	page.AddCharts(
		gauge("Model AUC", banner, scoreOf(view.Metrics, func(m *snapshot.Metrics) *float64 { return m.FederatedModel.AUC })),
		gauge("Model Recall", "", scoreOf(view.Metrics, func(m *snapshot.Metrics) *float64 { return m.FederatedModel.Recall })),
		gauge("Attack Defense Rate", "", scoreOf(view.Metrics, func(m *snapshot.Metrics) *float64 { return m.AttackResults.OverallDefenseRate })),
		scoreHistory(history),
	)

	return page.Render(w)
}

func scoreOf(m *snapshot.Metrics, pick func(*snapshot.Metrics) *float64) float64 {
	if m == nil {
		return 0
	}
	if v := pick(m); v != nil {
		return *v * 100
	}

	return 0
}

func gauge(title, subtitle string, value float64) *charts.Gauge {
	g := charts.NewGauge()
	g.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "420px", Height: "320px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
	)
	g.AddSeries(title, []opts.GaugeData{{Name: title, Value: value}})

	return g
}

func scoreHistory(history snapshot.HistoryPage) *charts.Line {
	labels := make([]string, 0, len(history.Records))
	aucs := make([]opts.LineData, 0, len(history.Records))
	recalls := make([]opts.LineData, 0, len(history.Records))

	for i := len(history.Records) - 1; i >= 0; i-- {
		r := history.Records[i]
		if r.Metrics == nil {
			continue
		}
		labels = append(labels, r.CreatedAt.Format("15:04:05"))
		aucs = append(aucs, lineValue(r.Metrics.FederatedModel.AUC))
		recalls = append(recalls, lineValue(r.Metrics.FederatedModel.Recall))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "920px", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{Title: "Model Scores Over Time"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 1}),
	)
	line.SetXAxis(labels).
		AddSeries("AUC", aucs).
		AddSeries("Recall", recalls)

	return line
}

func lineValue(v *float64) opts.LineData {
	if v == nil {
		return opts.LineData{Value: nil}
	}

	return opts.LineData{Value: *v}
}
