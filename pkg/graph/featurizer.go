package graph

import "fmt"

// ValidateFeaturizerConfigs checks that featurizer nodes are pairwise
// compatible. Downstream components address features by the featurizer's
// alias, so an explicitly configured alias must be unique across the
// pipeline; implicit aliases derive from the node name and cannot clash.
func ValidateFeaturizerConfigs(featurizers []SchemaNode) error {
	seen := make(map[string]string) // alias -> node name
	for _, node := range featurizers {
		alias := node.StringOption("alias", "")
		if alias == "" {
			continue
		}
		if prev, dup := seen[alias]; dup {
			return fmt.Errorf("%w: featurizers %q and %q share alias %q; "+
				"feature provenance would be ambiguous", ErrConfig, prev, node.Name, alias)
		}
		seen[alias] = node.Name
	}
	return nil
}
