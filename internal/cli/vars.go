package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/aescanero/dago-node-preview/internal/variables"
	"gopkg.in/yaml.v3"
)

// LoadRowsFile reads variable rows from a YAML file.
func LoadRowsFile(path string) ([]variables.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read variables %s: %w", path, err)
	}
	rows, err := ParseRows(data)
	if err != nil {
		return nil, fmt.Errorf("parse variables %s: %w", path, err)
	}
	return rows, nil
}

// ParseRows decodes variable rows from YAML. Two shapes are accepted: a
// mapping of key to value, whose document order becomes row order, or a
// sequence of {key, value} rows, which may repeat keys.
func ParseRows(data []byte) ([]variables.Row, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.MappingNode:
		rows := make([]variables.Row, 0, len(root.Content)/2)
		for i := 0; i+1 < len(root.Content); i += 2 {
			var value any
			if err := root.Content[i+1].Decode(&value); err != nil {
				return nil, fmt.Errorf("line %d: %w", root.Content[i+1].Line, err)
			}
			rows = append(rows, variables.Row{Key: root.Content[i].Value, Value: value})
		}
		return rows, nil

	case yaml.SequenceNode:
		var rows []variables.Row
		if err := root.Decode(&rows); err != nil {
			return nil, err
		}
		return rows, nil

	default:
		return nil, fmt.Errorf("line %d: expected a mapping or a list of rows", root.Line)
	}
}

// ParseVarFlags turns key=value flags into rows
func ParseVarFlags(flags []string) ([]variables.Row, error) {
	rows := make([]variables.Row, 0, len(flags))
	for _, flag := range flags {
		key, value, ok := strings.Cut(flag, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --var %q: expected key=value", flag)
		}
		rows = append(rows, variables.Row{Key: key, Value: value})
	}
	return rows, nil
}
