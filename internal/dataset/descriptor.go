package dataset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Descriptor is the on-disk schema configuration: which column the model
// predicts, optional display aliases, and the categorical column set.
type Descriptor struct {
	Target      string            `yaml:"target"`
	Aliases     map[string]string `yaml:"aliases"`
	Categorical []string          `yaml:"categorical"`
}

func LoadDescriptor(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema descriptor: %w", err)
	}

	var desc Descriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("failed to parse schema descriptor: %w", err)
	}
	return &desc, nil
}

// Schema combines the descriptor with a dataset's inferred columns. A
// descriptor without a categorical section yields a schema with no
// categorical set, which form building rejects.
func (desc *Descriptor) Schema(d *Dataset) (*Schema, error) {
	var categorical map[string]struct{}
	if desc.Categorical != nil {
		categorical = make(map[string]struct{}, len(desc.Categorical))
		for _, name := range desc.Categorical {
			categorical[name] = struct{}{}
		}
	}
	return NewSchema(d.Columns(), desc.Target, desc.Aliases, categorical)
}
