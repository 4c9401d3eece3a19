package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"chemviz/internal/models"
)

// orderedObject is a decoded JSON object that remembers key order, which Go
// maps do not. Category bars and table columns follow the server's order.
type orderedObject struct {
	keys   []string
	values map[string]json.RawMessage
}

func (o orderedObject) get(key string) (json.RawMessage, bool) {
	v, ok := o.values[key]
	if !ok || isNull(v) {
		return nil, false
	}
	return v, true
}

func decodeObject(raw json.RawMessage) (orderedObject, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return orderedObject{}, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return orderedObject{}, fmt.Errorf("expected JSON object, got %v", tok)
	}

	obj := orderedObject{values: make(map[string]json.RawMessage)}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return orderedObject{}, err
		}
		key, ok := kt.(string)
		if !ok {
			return orderedObject{}, fmt.Errorf("expected object key, got %v", kt)
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return orderedObject{}, fmt.Errorf("value of %q: %w", key, err)
		}
		if _, dup := obj.values[key]; !dup {
			obj.keys = append(obj.keys, key)
		}
		obj.values[key] = v
	}
	if _, err := dec.Token(); err != nil {
		return orderedObject{}, err
	}
	return obj, nil
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

// DecodeAnalytics maps a raw analytics payload onto the tagged variant.
// A payload carrying "dataset" is the anomaly shape; otherwise one carrying
// "type_distribution" is the aggregate shape; anything else is rejected.
func DecodeAnalytics(raw []byte) (models.AnalyticsResult, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return models.AnalyticsResult{}, fmt.Errorf("decode analytics: %w", err)
	}

	var filename string
	if v, ok := obj.get("filename"); ok {
		if err := json.Unmarshal(v, &filename); err != nil {
			return models.AnalyticsResult{}, fmt.Errorf("decode filename: %w", err)
		}
	}

	if ds, ok := obj.get("dataset"); ok {
		rows, err := decodeAnomalyRows(ds)
		if err != nil {
			return models.AnalyticsResult{}, err
		}
		total, avgs, err := decodeSummary(obj)
		if err != nil {
			return models.AnalyticsResult{}, err
		}
		return models.AnalyticsResult{
			Kind: models.KindAnomaly,
			Anomaly: &models.AnomalyResult{
				Filename:   filename,
				TotalCount: total,
				Averages:   avgs,
				Rows:       rows,
			},
		}, nil
	}

	if td, ok := obj.get("type_distribution"); ok {
		agg, err := decodeAggregate(obj, td)
		if err != nil {
			return models.AnalyticsResult{}, err
		}
		agg.Filename = filename
		return models.AnalyticsResult{Kind: models.KindAggregate, Aggregate: agg}, nil
	}

	return models.AnalyticsResult{}, fmt.Errorf("%w: keys %v", ErrUnrecognizedShape, obj.keys)
}

func decodeAggregate(obj orderedObject, distribution json.RawMessage) (*models.AggregateResult, error) {
	total, avgs, err := decodeSummary(obj)
	if err != nil {
		return nil, err
	}
	agg := &models.AggregateResult{TotalCount: total, Averages: avgs}

	dist, err := decodeObject(distribution)
	if err != nil {
		return nil, fmt.Errorf("decode type_distribution: %w", err)
	}
	agg.TypeDistribution = make([]models.CategoryCount, 0, len(dist.keys))
	for _, k := range dist.keys {
		var n float64
		if err := json.Unmarshal(dist.values[k], &n); err != nil {
			return nil, fmt.Errorf("decode type_distribution[%q]: %w", k, err)
		}
		agg.TypeDistribution = append(agg.TypeDistribution, models.CategoryCount{Category: k, Count: int(n)})
	}

	agg.Preview = []models.Row{}
	if v, ok := obj.get("preview"); ok {
		rows, err := decodeRows(v)
		if err != nil {
			return nil, fmt.Errorf("decode preview: %w", err)
		}
		agg.Preview = rows
	}
	return agg, nil
}

func decodeRows(raw json.RawMessage) ([]models.Row, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	rows := make([]models.Row, 0, len(items))
	for i, item := range items {
		obj, err := decodeObject(item)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		row := make(models.Row, 0, len(obj.keys))
		for _, k := range obj.keys {
			var v any
			if err := json.Unmarshal(obj.values[k], &v); err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", i, k, err)
			}
			row = append(row, models.Cell{Column: k, Value: v})
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// decodeSummary reads the whole-upload total_count and averages. Both
// shapes may carry them.
func decodeSummary(obj orderedObject) (int, models.Metrics, error) {
	var total int
	if v, ok := obj.get("total_count"); ok {
		var n float64
		if err := json.Unmarshal(v, &n); err != nil {
			return 0, nil, fmt.Errorf("decode total_count: %w", err)
		}
		total = int(n)
	}

	var avgs models.Metrics
	if v, ok := obj.get("averages"); ok {
		m, err := decodeObject(v)
		if err != nil {
			return 0, nil, fmt.Errorf("decode averages: %w", err)
		}
		for _, k := range m.keys {
			var n float64
			// NaN means and other non-numbers are left out; they render absent
			if err := json.Unmarshal(m.values[k], &n); err != nil || math.IsNaN(n) {
				continue
			}
			avgs = append(avgs, models.MetricValue{Name: k, Value: n})
		}
	}
	return total, avgs, nil
}

func decodeAnomalyRows(raw json.RawMessage) ([]models.AnomalyRow, error) {
	rows, err := decodeRows(raw)
	if err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	out := make([]models.AnomalyRow, 0, len(rows))
	for _, row := range rows {
		ar := models.AnomalyRow{Cells: row}
		for _, c := range row {
			switch canonicalColumn(c.Column) {
			case "equipmentname":
				ar.EquipmentName = toText(c.Value)
			case "type":
				ar.Type = toText(c.Value)
			case "flowrate":
				ar.Flowrate, _ = toFloat(c.Value)
			case "pressure":
				ar.Pressure, _ = toFloat(c.Value)
			case "temperature":
				ar.Temperature, _ = toFloat(c.Value)
			case "isanomaly":
				ar.IsAnomaly = toBool(c.Value)
			}
		}
		out = append(out, ar)
	}
	return out, nil
}

// canonicalColumn folds "Equipment Name", "equipment_name" and
// "equipmentName" onto the same key.
func canonicalColumn(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func toBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(t))
		return b
	}
	return false
}

func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
