package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDescriptor(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDescriptor(t *testing.T) {
	path := writeDescriptor(t, `
target: target
aliases:
  age: "Age (years)"
categorical:
  - city
`)

	desc, err := LoadDescriptor(path)
	require.NoError(t, err)
	assert.Equal(t, "target", desc.Target)
	assert.Equal(t, map[string]string{"age": "Age (years)"}, desc.Aliases)
	assert.Equal(t, []string{"city"}, desc.Categorical)
}

func TestDescriptor_Schema(t *testing.T) {
	d := loadReference(t)
	desc := &Descriptor{
		Target:      "target",
		Categorical: []string{"city"},
	}

	schema, err := desc.Schema(d)
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "city"}, schema.FeatureNames())
	assert.True(t, schema.IsCategorical("city"))
}

func TestDescriptor_Schema_NoCategoricalSection(t *testing.T) {
	d := loadReference(t)
	desc := &Descriptor{Target: "target"}

	schema, err := desc.Schema(d)
	require.NoError(t, err)
	assert.False(t, schema.HasCategorical())
}

func TestDescriptor_Schema_BadTarget(t *testing.T) {
	d := loadReference(t)
	desc := &Descriptor{Target: "label"}

	_, err := desc.Schema(d)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchema)
}
