package graph

import (
	"errors"
	"testing"
)

func mustComponent(t *testing.T, name string) ComponentType {
	t.Helper()
	c, ok := LookupComponent(name)
	if !ok {
		t.Fatalf("component %q not registered", name)
	}
	return c
}

func node(t *testing.T, name, typeName string, config map[string]any) SchemaNode {
	t.Helper()
	return SchemaNode{Name: name, Uses: mustComponent(t, typeName), Config: config}
}

func TestNewSchema_RejectsDuplicateNodeNames(t *testing.T) {
	_, err := NewSchema(
		node(t, "tok", WhitespaceTokenizer, nil),
		node(t, "tok", DIETClassifier, nil),
	)
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for duplicate node name, got %v", err)
	}
}

func TestNewSchema_RejectsUnnamedNode(t *testing.T) {
	_, err := NewSchema(SchemaNode{Uses: mustComponent(t, WhitespaceTokenizer)})
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for unnamed node, got %v", err)
	}
}

func TestSchema_Views(t *testing.T) {
	s, err := NewSchema(
		node(t, "tok", WhitespaceTokenizer, nil),
		node(t, "diet", DIETClassifier, map[string]any{"epochs": 100}),
		node(t, "rule", RulePolicy, nil),
		node(t, "ted", TEDPolicy, map[string]any{"priority": 2}),
	)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}

	if got := len(s.NodesOfKind(KindPolicy)); got != 2 {
		t.Errorf("NodesOfKind(policy) = %d nodes, want 2", got)
	}
	if got := len(s.NodesOfKind(KindTokenizer)); got != 1 {
		t.Errorf("NodesOfKind(tokenizer) = %d nodes, want 1", got)
	}

	types := s.ComponentTypes()
	if len(types) != 4 {
		t.Errorf("ComponentTypes() has %d entries, want 4", len(types))
	}
	if !s.ContainsType(DIETClassifier) {
		t.Error("ContainsType(DIETClassifier) = false, want true")
	}
	if s.ContainsType(RegexEntityExtractor) {
		t.Error("ContainsType(RegexEntityExtractor) = true, want false")
	}

	n, ok := s.NodeByName("diet")
	if !ok {
		t.Fatal("NodeByName(diet) not found")
	}
	if got := n.IntOption("epochs", 0); got != 100 {
		t.Errorf("IntOption(epochs) = %d, want 100", got)
	}
	if _, ok := s.NodeByName("missing"); ok {
		t.Error("NodeByName(missing) found, want not found")
	}
}

func TestSchemaNode_Options(t *testing.T) {
	n := SchemaNode{Config: map[string]any{
		"priority": float64(4), // JSON-sourced configs decode numbers as float64
		"alias":    "sparse",
		"cache":    true,
	}}
	if got := n.IntOption("priority", 0); got != 4 {
		t.Errorf("IntOption(priority) = %d, want 4", got)
	}
	if got := n.StringOption("alias", ""); got != "sparse" {
		t.Errorf("StringOption(alias) = %q, want sparse", got)
	}
	if !n.BoolOption("cache", false) {
		t.Error("BoolOption(cache) = false, want true")
	}
	if got := n.IntOption("absent", 7); got != 7 {
		t.Errorf("IntOption(absent) = %d, want default 7", got)
	}
}

func TestSupportedData_ConsumesRuleData(t *testing.T) {
	if MLData.ConsumesRuleData() {
		t.Error("MLData should not consume rule data")
	}
	if !RuleData.ConsumesRuleData() || !MLAndRuleData.ConsumesRuleData() {
		t.Error("RuleData and MLAndRuleData should consume rule data")
	}
}

func TestRegistry_PolicyTraits(t *testing.T) {
	rule := mustComponent(t, RulePolicy)
	if !rule.RuleHandling || !rule.IsPolicy() {
		t.Errorf("RulePolicy traits wrong: %+v", rule)
	}
	if rule.DefaultPriority != 6 {
		t.Errorf("RulePolicy default priority = %d, want 6", rule.DefaultPriority)
	}
	ted := mustComponent(t, TEDPolicy)
	if ted.RuleHandling {
		t.Error("TEDPolicy should not be rule-handling")
	}
	diet := mustComponent(t, DIETClassifier)
	if diet.IsPolicy() || !diet.Trainable || !diet.ExtractsEntities {
		t.Errorf("DIETClassifier traits wrong: %+v", diet)
	}
}
