package whatif

import (
	"bytes"
	"encoding/json"
)

// Cell is one collected counterfactual value, keyed by the original column
// name.
type Cell struct {
	Column string `json:"column"`
	Value  any    `json:"value"`
}

// Row is a complete counterfactual input: exactly one cell per feature
// column, in schema column order. Immutable once assembled.
type Row []Cell

func (r Row) Value(column string) (any, bool) {
	for _, cell := range r {
		if cell.Column == column {
			return cell.Value, true
		}
	}
	return nil, false
}

// UnmarshalJSON decodes cells while keeping integer values as int64 rather
// than float64, so a marshal/unmarshal cycle reproduces the original row.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []Cell
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	for i := range raw {
		raw[i].Value = NormalizeValue(raw[i].Value)
	}
	*r = raw
	return nil
}

// NormalizeValue converts json.Number into int64 when the value is integral,
// float64 otherwise. Other value types pass through.
func NormalizeValue(v any) any {
	num, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := num.Int64(); err == nil {
		return i
	}
	if f, err := num.Float64(); err == nil {
		return f
	}
	return num.String()
}
