package graph

import "fmt"

// SchemaNode is one named, configured component instance in the pipeline.
type SchemaNode struct {
	Name   string
	Uses   ComponentType
	Config map[string]any
}

// StringOption returns a string config value, or def if absent or not a string.
func (n SchemaNode) StringOption(key, def string) string {
	if v, ok := n.Config[key].(string); ok {
		return v
	}
	return def
}

// IntOption returns an integer config value, or def if absent. YAML
// decodes whole numbers as int, but accept float64 for JSON-sourced configs.
func (n SchemaNode) IntOption(key string, def int) int {
	switch v := n.Config[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return def
}

// BoolOption returns a boolean config value, or def if absent.
func (n SchemaNode) BoolOption(key string, def bool) bool {
	if v, ok := n.Config[key].(bool); ok {
		return v
	}
	return def
}

// Schema is an ordered collection of SchemaNodes with unique names.
// It is immutable after construction; the validator builds its read-only
// views from it once per training run.
type Schema struct {
	nodes []SchemaNode
	index map[string]int
}

// NewSchema builds a Schema, enforcing node-name uniqueness.
func NewSchema(nodes ...SchemaNode) (*Schema, error) {
	s := &Schema{
		nodes: nodes,
		index: make(map[string]int, len(nodes)),
	}
	for i, n := range nodes {
		if n.Name == "" {
			return nil, fmt.Errorf("%w: node %d has no name", ErrConfig, i)
		}
		if _, exists := s.index[n.Name]; exists {
			return nil, fmt.Errorf("%w: duplicate node name %q", ErrConfig, n.Name)
		}
		s.index[n.Name] = i
	}
	return s, nil
}

// Nodes returns the schema nodes in definition order.
func (s *Schema) Nodes() []SchemaNode { return s.nodes }

// NodeByName looks a node up by its unique name.
func (s *Schema) NodeByName(name string) (SchemaNode, bool) {
	i, ok := s.index[name]
	if !ok {
		return SchemaNode{}, false
	}
	return s.nodes[i], true
}

// NodesOfKind returns all nodes whose component type has the given kind,
// in definition order.
func (s *Schema) NodesOfKind(k Kind) []SchemaNode {
	var out []SchemaNode
	for _, n := range s.nodes {
		if n.Uses.Kind == k {
			out = append(out, n)
		}
	}
	return out
}

// NodesUsing returns all nodes of the given component type name.
func (s *Schema) NodesUsing(typeName string) []SchemaNode {
	var out []SchemaNode
	for _, n := range s.nodes {
		if n.Uses.Name == typeName {
			out = append(out, n)
		}
	}
	return out
}

// ComponentTypes returns the set of distinct component types present,
// keyed by type name.
func (s *Schema) ComponentTypes() map[string]ComponentType {
	out := make(map[string]ComponentType)
	for _, n := range s.nodes {
		out[n.Uses.Name] = n.Uses
	}
	return out
}

// ContainsType reports whether any node uses the named component type.
func (s *Schema) ContainsType(typeName string) bool {
	for _, n := range s.nodes {
		if n.Uses.Name == typeName {
			return true
		}
	}
	return false
}
