package service

import (
	"fmt"

	"chemviz/internal/api"
	"chemviz/internal/models"
)

const (
	barDatasetLabel = "Equipment Count by Type"

	normalSeries  = "Normal Operation"
	anomalySeries = "AI Detected Anomalies"
	normalColor   = "#36A2EB"
	anomalyColor  = "#FF6384"
	normalRadius  = 4
	anomalyRadius = 7

	anomalyCaption = "Anomalies are flagged by the backend's Isolation Forest model on Flowrate, Pressure and Temperature."
)

var barPalette = []string{"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0"}

// summaryMetrics are the averages shown in every summary, in order.
var summaryMetrics = []string{"Flowrate", "Pressure", "Temperature"}

// Project turns an analytics result into chart, table and summary data.
func Project(res models.AnalyticsResult) (models.Projection, error) {
	switch res.Kind {
	case models.KindAggregate:
		if res.Aggregate == nil {
			return models.Projection{}, fmt.Errorf("%w: aggregate payload missing", api.ErrUnrecognizedShape)
		}
		return projectAggregate(res.Aggregate), nil
	case models.KindAnomaly:
		if res.Anomaly == nil {
			return models.Projection{}, fmt.Errorf("%w: anomaly payload missing", api.ErrUnrecognizedShape)
		}
		return projectAnomaly(res.Anomaly), nil
	default:
		return models.Projection{}, fmt.Errorf("%w: kind %q", api.ErrUnrecognizedShape, res.Kind)
	}
}

func projectAggregate(a *models.AggregateResult) models.Projection {
	bars := make([]models.Bar, 0, len(a.TypeDistribution))
	for i, c := range a.TypeDistribution {
		bars = append(bars, models.Bar{
			Label: c.Category,
			Count: c.Count,
			Color: barPalette[i%len(barPalette)],
		})
	}

	return models.Projection{
		Kind:     models.KindAggregate,
		Filename: a.Filename,
		Chart: models.Chart{
			Kind:   models.ChartBar,
			Title:  barDatasetLabel,
			XLabel: "Type",
			YLabel: "Count",
			Bars:   bars,
		},
		Table:   buildTable(a.Preview),
		Summary: models.Summary{TotalCount: a.TotalCount, Scalars: averageScalars(a.Averages, 0)},
	}
}

func projectAnomaly(a *models.AnomalyResult) models.Projection {
	normal := models.ScatterSeries{Name: normalSeries, Color: normalColor, Radius: normalRadius, Points: []models.Point{}}
	flagged := models.ScatterSeries{Name: anomalySeries, Color: anomalyColor, Radius: anomalyRadius, Points: []models.Point{}}

	rows := make([]models.Row, 0, len(a.Rows))
	for i, r := range a.Rows {
		p := models.Point{X: r.Temperature, Y: r.Pressure, Row: i}
		if r.IsAnomaly {
			flagged.Points = append(flagged.Points, p)
		} else {
			normal.Points = append(normal.Points, p)
		}
		rows = append(rows, r.Cells)
	}

	// the dataset is a capped sample; prefer the server's whole-upload total
	total := a.TotalCount
	if total < len(a.Rows) {
		total = len(a.Rows)
	}
	count := float64(len(flagged.Points))
	scalars := append(averageScalars(a.Averages, 1), models.Scalar{
		Name:    "Anomalies",
		Value:   &count,
		Display: fmt.Sprintf("%d", len(flagged.Points)),
	})

	return models.Projection{
		Kind:     models.KindAnomaly,
		Filename: a.Filename,
		Chart: models.Chart{
			Kind:    models.ChartScatter,
			Title:   "Temperature vs Pressure",
			XLabel:  "Temperature",
			YLabel:  "Pressure",
			Series:  []models.ScatterSeries{normal, flagged},
			Caption: anomalyCaption,
		},
		Table:   buildTable(rows),
		Summary: models.Summary{TotalCount: total, Scalars: scalars},
	}
}

// averageScalars renders summaryMetrics formatted %.2f. A metric the
// server did not report has a nil Value and an empty Display. extra
// reserves room for scalars the caller appends.
func averageScalars(avgs models.Metrics, extra int) []models.Scalar {
	scalars := make([]models.Scalar, 0, len(summaryMetrics)+extra)
	for _, name := range summaryMetrics {
		sc := models.Scalar{Name: name}
		if v, ok := avgs.Lookup(name); ok {
			sc.Value = &v
			sc.Display = fmt.Sprintf("%.2f", v)
		}
		scalars = append(scalars, sc)
	}
	return scalars
}

// buildTable takes its columns from the first row. Later rows are read by
// column name, so a missing key renders as an empty cell.
func buildTable(rows []models.Row) models.Table {
	t := models.Table{Columns: []string{}, Rows: [][]string{}}
	if len(rows) == 0 {
		return t
	}
	cols := make([]string, 0, len(rows[0]))
	for _, c := range rows[0] {
		cols = append(cols, c.Column)
		t.Columns = append(t.Columns, cellText(c.Column))
	}
	for _, row := range rows {
		out := make([]string, len(cols))
		for i, col := range cols {
			if v, ok := row.Lookup(col); ok {
				out[i] = cellText(v)
			}
		}
		t.Rows = append(t.Rows, out)
	}
	return t
}
