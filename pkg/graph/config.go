package graph

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// configFile mirrors the on-disk pipeline configuration: an NLU pipeline
// and a dialogue policy ensemble, each a sequence of component entries.
type configFile struct {
	Recipe   string           `yaml:"recipe"`
	Language string           `yaml:"language"`
	Pipeline []map[string]any `yaml:"pipeline"`
	Policies []map[string]any `yaml:"policies"`
}

// LoadConfig reads a pipeline configuration file and resolves it into a
// Schema.
func LoadConfig(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig resolves pipeline configuration YAML into a Schema. Every
// entry must carry a `name` matching a registered component type; the
// remaining keys become the node's config mapping. Node names are derived
// from section and position, so a component type may appear more than once.
func ParseConfig(data []byte) (*Schema, error) {
	var cf configFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	var nodes []SchemaNode
	for i, entry := range cf.Pipeline {
		node, err := resolveEntry("pipeline", i, entry)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	for i, entry := range cf.Policies {
		node, err := resolveEntry("policies", i, entry)
		if err != nil {
			return nil, err
		}
		if !node.Uses.IsPolicy() {
			return nil, fmt.Errorf("%w: %q is not a policy but appears under `policies`",
				ErrConfig, node.Uses.Name)
		}
		nodes = append(nodes, node)
	}

	return NewSchema(nodes...)
}

func resolveEntry(section string, pos int, entry map[string]any) (SchemaNode, error) {
	rawName, ok := entry["name"].(string)
	if !ok || rawName == "" {
		return SchemaNode{}, fmt.Errorf("%w: %s entry %d has no `name`", ErrConfig, section, pos)
	}

	comp, ok := LookupComponent(rawName)
	if !ok {
		return SchemaNode{}, fmt.Errorf("%w: %q (known: %s)",
			ErrUnknownComponent, rawName, strings.Join(KnownComponentNames(), ", "))
	}

	config := make(map[string]any, len(entry)-1)
	for k, v := range entry {
		if k == "name" {
			continue
		}
		config[k] = v
	}

	return SchemaNode{
		Name:   fmt.Sprintf("%s.%d.%s", section, pos, comp.Name),
		Uses:   comp,
		Config: config,
	}, nil
}
