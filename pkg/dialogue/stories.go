package dialogue

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Event is one turn inside a story or rule: a user intent or a bot action.
type Event struct {
	Intent string `yaml:"intent,omitempty"`
	Action string `yaml:"action,omitempty"`
}

// Step is one story or rule from the training data. Rule steps are
// deterministic single-turn mappings consumed by rule-handling policies;
// story steps feed statistical policy training.
type Step struct {
	Name   string
	Rule   bool
	Events []Event
}

// StoryGraph is the ordered sequence of dialogue training steps.
type StoryGraph struct {
	steps []Step
}

// NewStoryGraph builds a StoryGraph preserving step order.
func NewStoryGraph(steps []Step) *StoryGraph {
	return &StoryGraph{steps: steps}
}

// OrderedSteps returns the steps in definition order.
func (g *StoryGraph) OrderedSteps() []Step { return g.steps }

// HasSteps reports whether any dialogue training data is present.
func (g *StoryGraph) HasSteps() bool { return len(g.steps) > 0 }

// HasRules reports whether the graph contains at least one rule step.
func (g *StoryGraph) HasRules() bool {
	for _, s := range g.steps {
		if s.Rule {
			return true
		}
	}
	return false
}

// MergeStoryGraphs combines several graphs, preserving order of parts.
func MergeStoryGraphs(parts ...*StoryGraph) *StoryGraph {
	out := &StoryGraph{}
	for _, p := range parts {
		if p == nil {
			continue
		}
		out.steps = append(out.steps, p.steps...)
	}
	return out
}

type storiesFile struct {
	Stories []storyEntry `yaml:"stories"`
	Rules   []storyEntry `yaml:"rules"`
}

type storyEntry struct {
	Story string  `yaml:"story"`
	Rule  string  `yaml:"rule"`
	Steps []Event `yaml:"steps"`
}

// LooksLikeStoryFile reports whether path is plausibly a YAML story file:
// a .yml or .yaml extension and a top-level `stories` or `rules` key.
// Unreadable or unparseable files answer false.
func LooksLikeStoryFile(path string) bool {
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
	default:
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false
	}
	_, hasStories := doc["stories"]
	_, hasRules := doc["rules"]
	return hasStories || hasRules
}

// LoadStories reads and parses a story file.
func LoadStories(path string) (*StoryGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stories: %w", err)
	}
	return ParseStories(data)
}

// ParseStories parses story YAML: a `stories:` sequence and a `rules:`
// sequence, either of which may be absent. Stories come first in the
// resulting graph, rules after, each keeping definition order.
func ParseStories(data []byte) (*StoryGraph, error) {
	var sf storiesFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse stories yaml: %w", err)
	}

	var steps []Step
	for _, e := range sf.Stories {
		steps = append(steps, Step{Name: e.Story, Events: e.Steps})
	}
	for _, e := range sf.Rules {
		steps = append(steps, Step{Name: e.Rule, Rule: true, Events: e.Steps})
	}
	return NewStoryGraph(steps), nil
}
