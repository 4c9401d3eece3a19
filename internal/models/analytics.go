package models

// AnalyticsKind tags which payload shape an AnalyticsResult carries.
type AnalyticsKind string

const (
	KindAggregate AnalyticsKind = "aggregate"
	KindAnomaly   AnalyticsKind = "anomaly"
)

// Cell is one column of a server row. Rows keep the server's column order.
type Cell struct {
	Column string `json:"column"`
	Value  any    `json:"value"`
}

type Row []Cell

// Lookup returns the value stored under column.
func (r Row) Lookup(column string) (any, bool) {
	for _, c := range r {
		if c.Column == column {
			return c.Value, true
		}
	}
	return nil, false
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type MetricValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Metrics keeps named values in the order the server sent them.
type Metrics []MetricValue

// Lookup returns the named value if the server reported it.
func (m Metrics) Lookup(name string) (float64, bool) {
	for _, v := range m {
		if v.Name == name {
			return v.Value, true
		}
	}
	return 0, false
}

// AggregateResult is the summary-statistics payload.
type AggregateResult struct {
	Filename         string          `json:"filename"`
	TotalCount       int             `json:"total_count"`
	Averages         Metrics         `json:"averages"`
	TypeDistribution []CategoryCount `json:"type_distribution"`
	Preview          []Row           `json:"preview"`
}

// Average returns the named average if the server reported it.
func (a *AggregateResult) Average(name string) (float64, bool) {
	return a.Averages.Lookup(name)
}

// AnomalyRow is one dataset row flagged (or not) by the detection model.
type AnomalyRow struct {
	EquipmentName string  `json:"equipment_name"`
	Type          string  `json:"type"`
	Flowrate      float64 `json:"flowrate"`
	Pressure      float64 `json:"pressure"`
	Temperature   float64 `json:"temperature"`
	IsAnomaly     bool    `json:"is_anomaly"`
	Cells         Row     `json:"cells"`
}

// AnomalyResult is the per-row anomaly payload. The server caps the
// dataset, so TotalCount and Averages describe the whole upload when sent.
type AnomalyResult struct {
	Filename   string       `json:"filename"`
	TotalCount int          `json:"total_count"` // 0 when not sent
	Averages   Metrics      `json:"averages"`
	Rows       []AnomalyRow `json:"rows"`
}

// AnalyticsResult is a tagged variant: exactly one of Aggregate and Anomaly
// is set, matching Kind.
type AnalyticsResult struct {
	Kind      AnalyticsKind    `json:"kind"`
	Aggregate *AggregateResult `json:"aggregate,omitempty"`
	Anomaly   *AnomalyResult   `json:"anomaly,omitempty"`
}

// Filename returns the dataset filename of whichever shape is set.
func (r AnalyticsResult) Filename() string {
	switch r.Kind {
	case KindAggregate:
		if r.Aggregate != nil {
			return r.Aggregate.Filename
		}
	case KindAnomaly:
		if r.Anomaly != nil {
			return r.Anomaly.Filename
		}
	}
	return ""
}

// ActiveAnalytics is the result bound to the view together with the history
// entry it was selected from.
type ActiveAnalytics struct {
	EntryID    int64           `json:"entry_id"`
	Filename   string          `json:"filename"`
	Result     AnalyticsResult `json:"-"`
	Projection Projection      `json:"projection"`
}
