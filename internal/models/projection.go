package models

type ChartKind string

const (
	ChartBar     ChartKind = "bar"
	ChartScatter ChartKind = "scatter"
)

type Bar struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// Point is a scatter point; Row indexes the dataset row it came from.
type Point struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Row int     `json:"row"`
}

type ScatterSeries struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Radius int     `json:"radius"` // marker radius in px
	Points []Point `json:"points"`
}

// Chart holds either bars or scatter series depending on Kind.
type Chart struct {
	Kind    ChartKind       `json:"kind"`
	Title   string          `json:"title"`
	XLabel  string          `json:"x_label,omitempty"`
	YLabel  string          `json:"y_label,omitempty"`
	Bars    []Bar           `json:"bars,omitempty"`
	Series  []ScatterSeries `json:"series,omitempty"`
	Caption string          `json:"caption,omitempty"`
}

type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Scalar is a summary value. A nil Value means the server did not report it.
type Scalar struct {
	Name    string   `json:"name"`
	Value   *float64 `json:"value"`
	Display string   `json:"display"`
}

type Summary struct {
	TotalCount int      `json:"total_count"`
	Scalars    []Scalar `json:"scalars"`
}

// Projection is the render-ready form of an AnalyticsResult.
type Projection struct {
	Kind     AnalyticsKind `json:"kind"`
	Filename string        `json:"filename"`
	Chart    Chart         `json:"chart"`
	Table    Table         `json:"table"`
	Summary  Summary       `json:"summary"`
}
