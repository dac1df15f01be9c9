package whatif

import (
	"errors"
	"fmt"
	"math"

	"github.com/mkalev/modelvet/internal/dataset"
)

var (
	// ErrSchemaMismatch is returned when an override dataset's columns do
	// not structurally match the reference dataset's.
	ErrSchemaMismatch = errors.New("schemas of provided data and reference data are different")

	// ErrMissingCategorical is returned when the schema carries no
	// categorical column set. Raised before any value is requested.
	ErrMissingCategorical = errors.New("categorical columns must be specified")
)

// UnsupportedColumnTypeError reports a feature column whose type cannot be
// mapped to any input shape.
type UnsupportedColumnTypeError struct {
	Column string
}

func (e *UnsupportedColumnTypeError) Error() string {
	return fmt.Sprintf("column %q type is not recognised", e.Column)
}

// Builder derives a counterfactual input form from a dataset schema and
// collects one value per feature through a Renderer.
type Builder struct {
	renderer Renderer
}

func NewBuilder(renderer Renderer) *Builder {
	return &Builder{renderer: renderer}
}

// BuildCounterfactual walks the schema's feature columns in order and
// collects one value for each, seeded from the observed statistics of the
// basis dataset. The basis is the reference dataset unless an override is
// supplied; an override must be schema-compatible with the reference
// (column-for-column name and type, order-independent) and is never coerced.
// Either a complete row is returned or the operation fails with no partial
// row.
func (b *Builder) BuildCounterfactual(schema *dataset.Schema, reference, override *dataset.Dataset) (Row, error) {
	basis := reference
	if override != nil {
		if !dataset.ColumnsEqual(override.Columns(), reference.Columns()) {
			return nil, ErrSchemaMismatch
		}
		basis = override
	}

	if !schema.HasCategorical() {
		return nil, ErrMissingCategorical
	}

	features := schema.Features()
	row := make(Row, 0, len(features))
	for _, col := range features {
		req, err := b.requestFor(schema, basis, col)
		if err != nil {
			return nil, err
		}

		value, err := b.renderer.Collect(*req)
		if err != nil {
			return nil, fmt.Errorf("collecting %s: %w", col.Name, err)
		}

		row = append(row, Cell{Column: col.Name, Value: value})
	}
	return row, nil
}

// requestFor maps a feature column onto a value-request shape per the
// categorical/numeric classification rules.
func (b *Builder) requestFor(schema *dataset.Schema, basis *dataset.Dataset, col dataset.Column) (*ValueRequest, error) {
	label := schema.DisplayName(col.Name)
	numeric := col.Type == dataset.ColumnTypeNumber

	if schema.IsCategorical(col.Name) {
		if numeric {
			stats, err := basis.Stats(col.Name)
			if err != nil {
				return nil, err
			}
			return &ValueRequest{
				Prompt:  label,
				Kind:    KindRange,
				Min:     int64(stats.Min),
				Max:     int64(stats.Max),
				Default: int64(math.Round(stats.Mean)),
			}, nil
		}

		choices := basis.Distinct(col.Name)
		req := &ValueRequest{
			Prompt:  label,
			Kind:    KindChoice,
			Choices: choices,
		}
		if len(choices) > 0 {
			req.DefaultChoice = choices[0]
		}
		return req, nil
	}

	if numeric {
		stats, err := basis.Stats(col.Name)
		if err != nil {
			return nil, err
		}
		return &ValueRequest{
			Prompt:  label,
			Kind:    KindBoundedNumeric,
			Min:     int64(stats.Min),
			Max:     int64(stats.Max),
			Default: int64(stats.Mean),
		}, nil
	}

	return nil, &UnsupportedColumnTypeError{Column: col.Name}
}
