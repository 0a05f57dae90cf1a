package nlu

import (
	"sort"
	"strings"
)

// ResponseIntentDelimiter separates a retrieval intent from its response
// key in an intent label (e.g. "faq/opening_hours").
const ResponseIntentDelimiter = "/"

// RegexFeature is a named regular expression from the training data.
type RegexFeature struct {
	Name    string
	Pattern string
}

// LookupTable is a named list of surface forms.
type LookupTable struct {
	Name     string
	Elements []string
}

// TrainingData is the parsed training corpus. Construct via New or Merge;
// treat as read-only afterwards — accessors hand out internal slices for
// inspection, not mutation.
type TrainingData struct {
	examples []Message
	synonyms map[string]string
	regexes  []RegexFeature
	lookups  []LookupTable
}

// New assembles a TrainingData container. A nil synonym map is replaced
// with an empty one so accessors never return nil.
func New(examples []Message, synonyms map[string]string, regexes []RegexFeature, lookups []LookupTable) *TrainingData {
	if synonyms == nil {
		synonyms = map[string]string{}
	}
	return &TrainingData{
		examples: examples,
		synonyms: synonyms,
		regexes:  regexes,
		lookups:  lookups,
	}
}

// Empty returns a container with no data.
func Empty() *TrainingData { return New(nil, nil, nil, nil) }

// Merge combines several containers into one, preserving order of parts.
// On synonym conflicts the first mapping wins, matching per-file parse order.
func Merge(parts ...*TrainingData) *TrainingData {
	out := Empty()
	for _, p := range parts {
		if p == nil {
			continue
		}
		out.examples = append(out.examples, p.examples...)
		out.regexes = append(out.regexes, p.regexes...)
		out.lookups = append(out.lookups, p.lookups...)
		for k, v := range p.synonyms {
			if _, exists := out.synonyms[k]; !exists {
				out.synonyms[k] = v
			}
		}
	}
	return out
}

// Examples returns all training examples in parse order.
func (td *TrainingData) Examples() []Message { return td.examples }

// EntitySynonyms returns the surface→canonical synonym mapping.
// Keys are case-sensitive surface strings.
func (td *TrainingData) EntitySynonyms() map[string]string { return td.synonyms }

// RegexFeatures returns the named regex patterns in parse order.
func (td *TrainingData) RegexFeatures() []RegexFeature { return td.regexes }

// LookupTables returns the lookup tables in parse order.
func (td *TrainingData) LookupTables() []LookupTable { return td.lookups }

// EntityExamples returns examples carrying at least one entity annotation.
func (td *TrainingData) EntityExamples() []Message {
	var out []Message
	for _, m := range td.examples {
		if len(m.Entities) > 0 {
			out = append(out, m)
		}
	}
	return out
}

// ResponseExamples returns examples labeled with a retrieval intent
// (an intent containing the response delimiter).
func (td *TrainingData) ResponseExamples() []Message {
	var out []Message
	for _, m := range td.examples {
		if strings.Contains(m.Intent, ResponseIntentDelimiter) {
			out = append(out, m)
		}
	}
	return out
}

// Intents returns the distinct intent labels, sorted.
func (td *TrainingData) Intents() []string {
	set := map[string]struct{}{}
	for _, m := range td.examples {
		if m.Intent != "" {
			set[m.Intent] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for i := range set {
		out = append(out, i)
	}
	sort.Strings(out)
	return out
}

// Entities returns the set of entity labels used in annotations.
func (td *TrainingData) Entities() map[string]struct{} {
	set := map[string]struct{}{}
	for _, m := range td.examples {
		for _, e := range m.Entities {
			set[e.Type] = struct{}{}
		}
	}
	return set
}

// EntityRolesGroupsUsed reports whether any annotation carries a role or
// group, which only some extractors can learn.
func (td *TrainingData) EntityRolesGroupsUsed() bool {
	for _, m := range td.examples {
		for _, e := range m.Entities {
			if e.Role != "" || e.Group != "" {
				return true
			}
		}
	}
	return false
}
