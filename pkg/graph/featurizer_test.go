package graph

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateFeaturizerConfigs_DistinctAliases(t *testing.T) {
	err := ValidateFeaturizerConfigs([]SchemaNode{
		node(t, "f1", RegexFeaturizer, map[string]any{"alias": "regex"}),
		node(t, "f2", CountVectorsFeaturizer, map[string]any{"alias": "bow"}),
		node(t, "f3", LexicalSyntacticFeaturizer, nil), // implicit alias
	})
	if err != nil {
		t.Fatalf("distinct aliases should pass: %v", err)
	}
}

func TestValidateFeaturizerConfigs_DuplicateAlias(t *testing.T) {
	err := ValidateFeaturizerConfigs([]SchemaNode{
		node(t, "f1", RegexFeaturizer, map[string]any{"alias": "sparse"}),
		node(t, "f2", CountVectorsFeaturizer, map[string]any{"alias": "sparse"}),
	})
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for duplicate alias, got %v", err)
	}
	if !strings.Contains(err.Error(), "sparse") {
		t.Errorf("error should name the clashing alias: %v", err)
	}
}

func TestValidateFeaturizerConfigs_NoFeaturizers(t *testing.T) {
	if err := ValidateFeaturizerConfigs(nil); err != nil {
		t.Fatalf("empty input should pass: %v", err)
	}
}
