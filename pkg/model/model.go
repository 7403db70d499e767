package model

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Model maps field names to templates. It is built once and only read afterwards.
type Model map[string]string

// Fields returns the field names in sorted order.
func (m Model) Fields() []string {
	return slices.Sorted(maps.Keys(m))
}

// Compile reads the model file at path. Files ending in .yaml or .yml are
// read as a YAML mapping, anything else as "field=template" lines.
// Templates are not validated here.
func Compile(path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%w: %s", ErrModelNotFound, path), err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

// Parse reads "field=template" lines. The line is split on the first "=",
// so templates may contain "=". Blank lines are skipped; any other line
// without "=" or with an empty field name is an error. A repeated field
// keeps its last template.
func Parse(data []byte) (Model, error) {
	m := make(Model)
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		name, template, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("%w %d: missing '=' in %q", ErrInvalidLine, i+1, line)
		}
		if name == "" {
			return nil, fmt.Errorf("%w %d: empty field name", ErrInvalidLine, i+1)
		}
		m[name] = template
	}

	if len(m) == 0 {
		return nil, ErrEmptyModel
	}
	return m, nil
}

// ParseYAML reads a flat mapping of field names to scalar templates.
// Templates starting with "#", "@" or "!" must be quoted in YAML.
func ParseYAML(data []byte) (Model, error) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidYAML, err)
	}

	m := make(Model, len(doc))
	for name, node := range doc {
		if node.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: field %q must be a scalar template", ErrInvalidYAML, name)
		}
		if node.Tag == "!!null" {
			return nil, fmt.Errorf("%w: field %q has no template, quote templates starting with '#'", ErrInvalidYAML, name)
		}
		if strings.HasPrefix(node.Tag, "!") && !strings.HasPrefix(node.Tag, "!!") {
			return nil, fmt.Errorf("%w: field %q: quote hash templates starting with '!'", ErrInvalidYAML, name)
		}
		m[name] = node.Value
	}

	if len(m) == 0 {
		return nil, ErrEmptyModel
	}
	return m, nil
}
