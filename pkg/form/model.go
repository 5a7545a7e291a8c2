package form

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

var ErrModelShape = errors.New("model must be a mapping of scalars")

// DecodeModel reads a posted form from YAML. Every scalar is kept as the
// string a browser would post and null reads as nil.
func DecodeModel(r io.Reader) (map[string]any, error) {
	var doc yaml.Node

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse model: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}

	if root.Kind != yaml.MappingNode {
		return nil, ErrModelShape
	}

	model := make(map[string]any, len(root.Content)/2)

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: %s", ErrModelShape, key.Value)
		}

		if value.ShortTag() == "!!null" {
			model[key.Value] = nil

			continue
		}

		model[key.Value] = value.Value
	}

	return model, nil
}
