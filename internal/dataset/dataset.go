package dataset

import (
	"fmt"
)

// Dataset is an in-memory tabular dataset with typed columns. Values are
// float64 for number columns, string for string columns, bool for boolean
// columns. Missing cells are nil.
type Dataset struct {
	columns []Column
	rows    []map[string]any
}

func New(columns []Column, rows []map[string]any) *Dataset {
	return &Dataset{columns: columns, rows: rows}
}

func (d *Dataset) Columns() []Column {
	return d.columns
}

func (d *Dataset) RowCount() int {
	return len(d.rows)
}

func (d *Dataset) Rows() []map[string]any {
	return d.rows
}

func (d *Dataset) Column(name string) (Column, error) {
	for _, col := range d.columns {
		if col.Name == name {
			return col, nil
		}
	}
	return Column{}, fmt.Errorf("column not found: %s", name)
}

// ColumnStats holds observed statistics for a numeric column.
type ColumnStats struct {
	Min   float64
	Max   float64
	Mean  float64
	Count int
}

// Stats computes min/max/mean over the non-missing values of a numeric
// column.
func (d *Dataset) Stats(name string) (*ColumnStats, error) {
	col, err := d.Column(name)
	if err != nil {
		return nil, err
	}
	if col.Type != ColumnTypeNumber {
		return nil, fmt.Errorf("column %s is not numeric", name)
	}

	stats := &ColumnStats{}
	sum := 0.0
	for _, row := range d.rows {
		v, ok := row[name].(float64)
		if !ok {
			continue
		}
		if stats.Count == 0 || v < stats.Min {
			stats.Min = v
		}
		if stats.Count == 0 || v > stats.Max {
			stats.Max = v
		}
		sum += v
		stats.Count++
	}
	if stats.Count == 0 {
		return nil, fmt.Errorf("column %s has no values", name)
	}
	stats.Mean = sum / float64(stats.Count)
	return stats, nil
}

// Distinct returns the distinct non-missing values of a column, in first-seen
// row order.
func (d *Dataset) Distinct(name string) []any {
	seen := make(map[any]struct{})
	var values []any
	for _, row := range d.rows {
		v, ok := row[name]
		if !ok || v == nil || v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}
