package feedback

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mkalev/modelvet/internal/whatif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	for _, label := range []string{"other", "single_prediction_error", "bias", "important_features"} {
		parsed, err := ParseType(label)
		require.NoError(t, err)
		assert.Equal(t, Type(label), parsed)
	}
}

func TestParseType_Unknown(t *testing.T) {
	_, err := ParseType("unknown")
	require.Error(t, err)

	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "unknown", unsupported.Label)
}

func TestRecord_JSONRoundTrip(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	input := whatif.Row{
		{Column: "age", Value: int64(25)},
		{Column: "city", Value: "LA"},
	}

	records := []*Record{
		{
			ID:        "r-other",
			Type:      TypeOther,
			CreatedAt: createdAt,
			Metadata:  OtherMetadata{Description: "free text"},
		},
		{
			ID:        "r-spe",
			Type:      TypeSinglePredictionError,
			CreatedAt: createdAt,
			Metadata: SinglePredictionErrorMetadata{
				CorrectedPrediction: int64(1),
				Description:         "A single edge case.",
				Input:               input,
			},
		},
		{
			ID:        "r-feat",
			Type:      TypeImportantFeatures,
			CreatedAt: createdAt,
			Metadata: ImportantFeaturesMetadata{
				SelectedFeature: "age",
				TopNFeature:     2,
				Description:     "Most important features.",
			},
		},
		{
			ID:        "r-bias",
			Type:      TypeBias,
			CreatedAt: createdAt,
			Metadata:  BiasMetadata{Description: "Feedback on bias."},
		},
	}

	for _, record := range records {
		t.Run(string(record.Type), func(t *testing.T) {
			data, err := json.Marshal(record)
			require.NoError(t, err)

			var decoded Record
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, *record, decoded)
		})
	}
}

func TestRecord_BiasMetadataShape(t *testing.T) {
	record := &Record{
		ID:        "r-bias",
		Type:      TypeBias,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Metadata:  BiasMetadata{Description: "Feedback on bias."},
	}

	data, err := json.Marshal(record)
	require.NoError(t, err)

	var envelope struct {
		Metadata json.RawMessage `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(data, &envelope))
	assert.JSONEq(t, `{"description": "Feedback on bias."}`, string(envelope.Metadata))
}

func TestRecord_UnmarshalUnknownType(t *testing.T) {
	payload := `{"id":"r-1","feedback_type":"unknown","metadata":{}}`

	var record Record
	err := json.Unmarshal([]byte(payload), &record)
	require.Error(t, err)

	var unsupported *UnsupportedTypeError
	assert.ErrorAs(t, err, &unsupported)
}

func TestUnmarshalMetadata_PreservesIntegers(t *testing.T) {
	meta, err := UnmarshalMetadata(TypeSinglePredictionError,
		[]byte(`{"corrected_prediction":1,"description":"A single edge case.","input":[{"column":"age","value":25}]}`))
	require.NoError(t, err)

	spe, ok := meta.(SinglePredictionErrorMetadata)
	require.True(t, ok)
	assert.Equal(t, int64(1), spe.CorrectedPrediction)

	age, ok := spe.Input.Value("age")
	require.True(t, ok)
	assert.Equal(t, int64(25), age)
}
