package dataset

import (
	"errors"
	"fmt"
)

type ColumnType string

const (
	ColumnTypeString  ColumnType = "string"
	ColumnTypeNumber  ColumnType = "number"
	ColumnTypeBoolean ColumnType = "boolean"
	ColumnTypeDate    ColumnType = "date"
)

var ErrSchema = errors.New("invalid schema")

type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Schema describes a reference dataset: its ordered columns, the target
// (predicted) column, optional display aliases, and which columns are treated
// as categorical. A nil Categorical set means the information was never
// supplied, which is distinct from an empty set.
type Schema struct {
	columns     []Column
	target      string
	aliases     map[string]string
	categorical map[string]struct{}
}

func NewSchema(columns []Column, target string, aliases map[string]string, categorical map[string]struct{}) (*Schema, error) {
	names := make(map[string]ColumnType, len(columns))
	for _, col := range columns {
		if _, ok := names[col.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrSchema, col.Name)
		}
		names[col.Name] = col.Type
	}

	if _, ok := names[target]; !ok {
		return nil, fmt.Errorf("%w: target column %q not in columns", ErrSchema, target)
	}

	for alias := range aliases {
		if _, ok := names[alias]; !ok {
			return nil, fmt.Errorf("%w: alias key %q not in columns", ErrSchema, alias)
		}
	}

	for cat := range categorical {
		if _, ok := names[cat]; !ok {
			return nil, fmt.Errorf("%w: categorical column %q not in columns", ErrSchema, cat)
		}
	}

	return &Schema{
		columns:     columns,
		target:      target,
		aliases:     aliases,
		categorical: categorical,
	}, nil
}

func (s *Schema) Columns() []Column {
	return s.columns
}

func (s *Schema) Target() string {
	return s.target
}

// Features returns the columns excluding the target, in schema order.
func (s *Schema) Features() []Column {
	features := make([]Column, 0, len(s.columns)-1)
	for _, col := range s.columns {
		if col.Name != s.target {
			features = append(features, col)
		}
	}
	return features
}

func (s *Schema) FeatureNames() []string {
	features := s.Features()
	names := make([]string, len(features))
	for i, col := range features {
		names[i] = col.Name
	}
	return names
}

// DisplayName resolves the business alias for a column, falling back to the
// raw column name.
func (s *Schema) DisplayName(column string) string {
	if alias, ok := s.aliases[column]; ok {
		return alias
	}
	return column
}

func (s *Schema) IsCategorical(column string) bool {
	_, ok := s.categorical[column]
	return ok
}

// HasCategorical reports whether the categorical set was supplied at all.
func (s *Schema) HasCategorical() bool {
	return s.categorical != nil
}

// ColumnsEqual reports whether two column sets describe the same structure:
// the same names mapped to the same types, independent of order and of any
// row values.
func ColumnsEqual(a, b []Column) bool {
	if len(a) != len(b) {
		return false
	}
	types := make(map[string]ColumnType, len(a))
	for _, col := range a {
		types[col.Name] = col.Type
	}
	for _, col := range b {
		t, ok := types[col.Name]
		if !ok || t != col.Type {
			return false
		}
	}
	return true
}
