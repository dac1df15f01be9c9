package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testColumns() []Column {
	return []Column{
		{Name: "age", Type: ColumnTypeNumber},
		{Name: "city", Type: ColumnTypeString},
		{Name: "target", Type: ColumnTypeNumber},
	}
}

func TestNewSchema(t *testing.T) {
	schema, err := NewSchema(testColumns(), "target", nil, map[string]struct{}{"city": {}})
	require.NoError(t, err)

	assert.Equal(t, "target", schema.Target())
	assert.Equal(t, []string{"age", "city"}, schema.FeatureNames())
	assert.True(t, schema.IsCategorical("city"))
	assert.False(t, schema.IsCategorical("age"))
	assert.True(t, schema.HasCategorical())
}

func TestNewSchema_TargetNotInColumns(t *testing.T) {
	_, err := NewSchema(testColumns(), "label", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchema)
}

func TestNewSchema_UnknownAliasKey(t *testing.T) {
	_, err := NewSchema(testColumns(), "target", map[string]string{"income": "Income"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchema)
}

func TestNewSchema_UnknownCategoricalColumn(t *testing.T) {
	_, err := NewSchema(testColumns(), "target", nil, map[string]struct{}{"income": {}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchema)
}

func TestNewSchema_DuplicateColumn(t *testing.T) {
	columns := append(testColumns(), Column{Name: "age", Type: ColumnTypeString})
	_, err := NewSchema(columns, "target", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchema)
}

func TestSchema_HasCategorical_AbsentVsEmpty(t *testing.T) {
	absent, err := NewSchema(testColumns(), "target", nil, nil)
	require.NoError(t, err)
	assert.False(t, absent.HasCategorical())

	empty, err := NewSchema(testColumns(), "target", nil, map[string]struct{}{})
	require.NoError(t, err)
	assert.True(t, empty.HasCategorical())
}

func TestSchema_DisplayName(t *testing.T) {
	schema, err := NewSchema(testColumns(), "target", map[string]string{"age": "Age (years)"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Age (years)", schema.DisplayName("age"))
	assert.Equal(t, "city", schema.DisplayName("city"))
}

func TestColumnsEqual(t *testing.T) {
	a := []Column{
		{Name: "age", Type: ColumnTypeNumber},
		{Name: "city", Type: ColumnTypeString},
	}

	reordered := []Column{
		{Name: "city", Type: ColumnTypeString},
		{Name: "age", Type: ColumnTypeNumber},
	}
	assert.True(t, ColumnsEqual(a, reordered))

	renamed := []Column{
		{Name: "age", Type: ColumnTypeNumber},
		{Name: "town", Type: ColumnTypeString},
	}
	assert.False(t, ColumnsEqual(a, renamed))

	retyped := []Column{
		{Name: "age", Type: ColumnTypeString},
		{Name: "city", Type: ColumnTypeString},
	}
	assert.False(t, ColumnsEqual(a, retyped))

	assert.False(t, ColumnsEqual(a, a[:1]))
}
