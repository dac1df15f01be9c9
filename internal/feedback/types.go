package feedback

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mkalev/modelvet/internal/whatif"
)

// Type is the closed set of feedback categories.
type Type string

const (
	TypeOther                 Type = "other"
	TypeSinglePredictionError Type = "single_prediction_error"
	TypeBias                  Type = "bias"
	TypeImportantFeatures     Type = "important_features"
)

// Fixed descriptions stamped onto the non-free-text variants.
const (
	descriptionSingleEdgeCase    = "A single edge case."
	descriptionImportantFeatures = "Most important features."
	descriptionBias              = "Feedback on bias."
)

// UnsupportedTypeError reports a feedback label outside the closed variant
// set.
type UnsupportedTypeError struct {
	Label string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported feedback type %q", e.Label)
}

// ParseType maps a user-chosen label onto the closed variant set.
func ParseType(label string) (Type, error) {
	switch Type(label) {
	case TypeOther, TypeSinglePredictionError, TypeBias, TypeImportantFeatures:
		return Type(label), nil
	default:
		return "", &UnsupportedTypeError{Label: label}
	}
}

// Metadata is the variant-specific payload of a feedback record.
type Metadata interface {
	feedbackType() Type
}

type OtherMetadata struct {
	Description string `json:"description"`
}

func (OtherMetadata) feedbackType() Type { return TypeOther }

type SinglePredictionErrorMetadata struct {
	CorrectedPrediction any        `json:"corrected_prediction"`
	Description         string     `json:"description"`
	Input               whatif.Row `json:"input"`
}

func (SinglePredictionErrorMetadata) feedbackType() Type { return TypeSinglePredictionError }

func (m *SinglePredictionErrorMetadata) UnmarshalJSON(data []byte) error {
	type alias SinglePredictionErrorMetadata
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw alias
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	raw.CorrectedPrediction = whatif.NormalizeValue(raw.CorrectedPrediction)
	*m = SinglePredictionErrorMetadata(raw)
	return nil
}

type ImportantFeaturesMetadata struct {
	SelectedFeature string `json:"selected_feature"`
	TopNFeature     int    `json:"top_n_feature"`
	Description     string `json:"description"`
}

func (ImportantFeaturesMetadata) feedbackType() Type { return TypeImportantFeatures }

type BiasMetadata struct {
	Description string `json:"description"`
}

func (BiasMetadata) feedbackType() Type { return TypeBias }

// Record is one finished piece of feedback: a type tag plus its
// variant-specific metadata. Created fresh per submission and immutable.
type Record struct {
	ID        string    `json:"id"`
	Type      Type      `json:"feedback_type"`
	CreatedAt time.Time `json:"created_at"`
	Metadata  Metadata  `json:"metadata"`
}

type recordEnvelope struct {
	ID        string          `json:"id"`
	Type      Type            `json:"feedback_type"`
	CreatedAt time.Time       `json:"created_at"`
	Metadata  json.RawMessage `json:"metadata"`
}

// UnmarshalMetadata decodes a metadata payload for the given feedback type.
// Unknown tags fail with UnsupportedTypeError rather than defaulting.
func UnmarshalMetadata(feedbackType Type, data []byte) (Metadata, error) {
	switch feedbackType {
	case TypeOther:
		m := &OtherMetadata{}
		if err := json.Unmarshal(data, m); err != nil {
			return nil, err
		}
		return *m, nil
	case TypeSinglePredictionError:
		m := &SinglePredictionErrorMetadata{}
		if err := json.Unmarshal(data, m); err != nil {
			return nil, err
		}
		return *m, nil
	case TypeImportantFeatures:
		m := &ImportantFeaturesMetadata{}
		if err := json.Unmarshal(data, m); err != nil {
			return nil, err
		}
		return *m, nil
	case TypeBias:
		m := &BiasMetadata{}
		if err := json.Unmarshal(data, m); err != nil {
			return nil, err
		}
		return *m, nil
	default:
		return nil, &UnsupportedTypeError{Label: string(feedbackType)}
	}
}

// UnmarshalJSON dispatches the metadata payload on the feedback_type tag.
func (r *Record) UnmarshalJSON(data []byte) error {
	var env recordEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	meta, err := UnmarshalMetadata(env.Type, env.Metadata)
	if err != nil {
		return err
	}

	r.ID = env.ID
	r.Type = env.Type
	r.CreatedAt = env.CreatedAt
	r.Metadata = meta
	return nil
}
