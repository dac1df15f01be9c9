package feedback

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mkalev/modelvet/internal/dataset"
	"github.com/mkalev/modelvet/internal/logging"
	"github.com/mkalev/modelvet/internal/whatif"
)

// Sink durably stores a finished feedback record.
type Sink interface {
	Save(ctx context.Context, record *Record) error
}

// Collector assembles one feedback record per session: it prompts for a
// feedback type, runs the type-specific sub-collection through the renderer,
// and hands the finished record to the sink on submit.
type Collector struct {
	renderer  whatif.Renderer
	schema    *dataset.Schema
	reference *dataset.Dataset
	sink      Sink
	remote    bool
}

func NewCollector(renderer whatif.Renderer, schema *dataset.Schema, reference *dataset.Dataset, sink Sink, remote bool) *Collector {
	return &Collector{
		renderer:  renderer,
		schema:    schema,
		reference: reference,
		sink:      sink,
		remote:    remote,
	}
}

// ChooseType prompts for one of the four feedback types.
func (c *Collector) ChooseType() (Type, error) {
	label, err := c.renderer.Collect(whatif.ValueRequest{
		Prompt: "Choose feedback type:",
		Kind:   whatif.KindChoice,
		Choices: []any{
			string(TypeSinglePredictionError),
			string(TypeBias),
			string(TypeImportantFeatures),
			string(TypeOther),
		},
		DefaultChoice: string(TypeSinglePredictionError),
	})
	if err != nil {
		return "", fmt.Errorf("choosing feedback type: %w", err)
	}

	s, ok := label.(string)
	if !ok {
		return "", fmt.Errorf("feedback type label must be a string, got %T", label)
	}
	return ParseType(s)
}

// Collect runs the sub-collection for the given feedback type and returns a
// finished record. The counterfactual input row is attached only to
// single-prediction-error records.
func (c *Collector) Collect(feedbackType Type, input whatif.Row) (*Record, error) {
	var meta Metadata
	var err error

	switch feedbackType {
	case TypeOther:
		meta, err = c.collectOther()
	case TypeSinglePredictionError:
		meta, err = c.collectSingleEdgeCase(input)
	case TypeImportantFeatures:
		meta, err = c.collectImportantFeatures()
	case TypeBias:
		meta = BiasMetadata{Description: descriptionBias}
	default:
		return nil, &UnsupportedTypeError{Label: string(feedbackType)}
	}
	if err != nil {
		return nil, err
	}

	return &Record{
		ID:        uuid.New().String(),
		Type:      feedbackType,
		CreatedAt: time.Now().UTC(),
		Metadata:  meta,
	}, nil
}

// Submit hands the record to the sink. Any sink failure is fatal to the
// submission.
func (c *Collector) Submit(ctx context.Context, record *Record) error {
	if err := c.sink.Save(ctx, record); err != nil {
		return fmt.Errorf("saving feedback: %w", err)
	}

	destination := "locally"
	if c.remote {
		destination = "to the platform"
	}
	logging.Log.Info("feedback saved",
		"record_id", record.ID,
		"feedback_type", string(record.Type),
		"destination", destination,
	)
	return nil
}

func (c *Collector) collectOther() (Metadata, error) {
	description, err := c.renderer.Collect(whatif.ValueRequest{
		Prompt:      "Feedback description:",
		Kind:        whatif.KindText,
		DefaultText: "Send free text feedback here",
	})
	if err != nil {
		return nil, err
	}

	s, ok := description.(string)
	if !ok {
		return nil, fmt.Errorf("description must be a string, got %T", description)
	}
	return OtherMetadata{Description: s}, nil
}

// collectSingleEdgeCase prompts for the corrected prediction, drawn from the
// target column's observed distinct values.
func (c *Collector) collectSingleEdgeCase(input whatif.Row) (Metadata, error) {
	targets := c.reference.Distinct(c.schema.Target())
	corrected, err := c.renderer.Collect(whatif.ValueRequest{
		Prompt:  "The model prediction for this edge case should be:",
		Kind:    whatif.KindChoice,
		Choices: targets,
	})
	if err != nil {
		return nil, err
	}

	return SinglePredictionErrorMetadata{
		CorrectedPrediction: corrected,
		Description:         descriptionSingleEdgeCase,
		Input:               input,
	}, nil
}

func (c *Collector) collectImportantFeatures() (Metadata, error) {
	features := c.schema.FeatureNames()
	choices := make([]any, len(features))
	for i, name := range features {
		choices[i] = name
	}

	selected, err := c.renderer.Collect(whatif.ValueRequest{
		Prompt:  "Choose model feature:",
		Kind:    whatif.KindChoice,
		Choices: choices,
	})
	if err != nil {
		return nil, err
	}
	feature, ok := selected.(string)
	if !ok {
		return nil, fmt.Errorf("feature name must be a string, got %T", selected)
	}

	topN, err := c.renderer.Collect(whatif.ValueRequest{
		Prompt:  "The selected feature should be in the top ... features:",
		Kind:    whatif.KindRange,
		Min:     1,
		Max:     int64(len(features)),
		Default: 1,
	})
	if err != nil {
		return nil, err
	}
	n, ok := topN.(int64)
	if !ok {
		return nil, fmt.Errorf("feature rank must be an integer, got %T", topN)
	}
	if n < 1 || n > int64(len(features)) {
		return nil, fmt.Errorf("feature rank %d out of range [1, %d]", n, len(features))
	}

	return ImportantFeaturesMetadata{
		SelectedFeature: feature,
		TopNFeature:     int(n),
		Description:     descriptionImportantFeatures,
	}, nil
}
