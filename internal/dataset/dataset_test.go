package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const referenceCSV = `age,city,target
20,NY,0
30,NY,1
40,LA,1
`

func loadReference(t *testing.T) *Dataset {
	t.Helper()
	result, err := ReadCSV(strings.NewReader(referenceCSV))
	require.NoError(t, err)
	d, err := FromCSV(result)
	require.NoError(t, err)
	return d
}

func TestFromCSV_InfersTypes(t *testing.T) {
	d := loadReference(t)

	expected := []Column{
		{Name: "age", Type: ColumnTypeNumber},
		{Name: "city", Type: ColumnTypeString},
		{Name: "target", Type: ColumnTypeNumber},
	}
	assert.Equal(t, expected, d.Columns())
	assert.Equal(t, 3, d.RowCount())
	assert.Equal(t, 20.0, d.Rows()[0]["age"])
	assert.Equal(t, "NY", d.Rows()[0]["city"])
}

func TestStats(t *testing.T) {
	d := loadReference(t)

	stats, err := d.Stats("age")
	require.NoError(t, err)
	assert.Equal(t, 20.0, stats.Min)
	assert.Equal(t, 40.0, stats.Max)
	assert.Equal(t, 30.0, stats.Mean)
	assert.Equal(t, 3, stats.Count)
}

func TestStats_NonNumericColumn(t *testing.T) {
	d := loadReference(t)

	_, err := d.Stats("city")
	require.Error(t, err)
}

func TestStats_SkipsMissingValues(t *testing.T) {
	result, err := ReadCSV(strings.NewReader("age,city\n10,NY\n,LA\n30,NY\n"))
	require.NoError(t, err)
	d, err := FromCSV(result)
	require.NoError(t, err)

	stats, err := d.Stats("age")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, 20.0, stats.Mean)
}

func TestDistinct(t *testing.T) {
	d := loadReference(t)

	assert.Equal(t, []any{"NY", "LA"}, d.Distinct("city"))
	assert.Equal(t, []any{0.0, 1.0}, d.Distinct("target"))
}

func TestInferColumnType(t *testing.T) {
	assert.Equal(t, ColumnTypeNumber, InferColumnType([]string{"1", "2.5", ""}))
	assert.Equal(t, ColumnTypeBoolean, InferColumnType([]string{"true", "False"}))
	assert.Equal(t, ColumnTypeDate, InferColumnType([]string{"2024-01-02", "2024-03-04"}))
	assert.Equal(t, ColumnTypeString, InferColumnType([]string{"NY", "LA"}))
	assert.Equal(t, ColumnTypeString, InferColumnType([]string{"", ""}))
}
