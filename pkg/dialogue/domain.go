// Package dialogue models the dialogue side of the training corpus: the
// domain (intents, actions, responses, forms) and the story graph of
// example conversations, with rule steps marked apart from stories.
package dialogue

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDomain is returned when the domain contradicts the policy
// configuration (e.g. forms without a rule-handling policy, or a fallback
// action the domain does not declare).
var ErrInvalidDomain = errors.New("dialogue: invalid domain")

// Default intents every assistant understands and the actions they map to.
const (
	IntentRestart = "restart"
	IntentBack    = "back"

	ActionRestart         = "action_restart"
	ActionBack            = "action_back"
	ActionDefaultFallback = "action_default_fallback"
)

// defaultActions are always available regardless of domain content.
var defaultActions = []string{
	"action_listen",
	ActionRestart,
	ActionBack,
	ActionDefaultFallback,
	"action_deactivate_loop",
	"action_session_start",
}

// Domain declares what the assistant knows: intents, entities, actions,
// response templates and forms (multi-turn slot-filling flows).
type Domain struct {
	Intents   []string                  `yaml:"intents"`
	Entities  []string                  `yaml:"entities"`
	Actions   []string                  `yaml:"actions"`
	Responses map[string]yaml.Node      `yaml:"responses"`
	Forms     map[string]map[string]any `yaml:"forms"`
}

// LoadDomain reads and parses a domain file.
func LoadDomain(path string) (*Domain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read domain: %w", err)
	}
	return ParseDomain(data)
}

// ParseDomain parses domain YAML.
func ParseDomain(data []byte) (*Domain, error) {
	var d Domain
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse domain yaml: %w", err)
	}
	return &d, nil
}

// FormNames returns declared form names, sorted.
func (d *Domain) FormNames() []string {
	out := make([]string, 0, len(d.Forms))
	for name := range d.Forms {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ActionNames returns every action the domain can dispatch: declared
// actions, response templates, forms, and the built-in defaults.
func (d *Domain) ActionNames() []string {
	set := map[string]struct{}{}
	for _, a := range d.Actions {
		set[a] = struct{}{}
	}
	for r := range d.Responses {
		set[r] = struct{}{}
	}
	for f := range d.Forms {
		set[f] = struct{}{}
	}
	for _, a := range defaultActions {
		set[a] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// HasAction reports whether the domain can dispatch the named action.
func (d *Domain) HasAction(name string) bool {
	for _, a := range d.ActionNames() {
		if a == name {
			return true
		}
	}
	return false
}
