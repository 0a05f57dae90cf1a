// Package nlu holds the in-memory representation of natural-language
// training data: intent-labeled example utterances with entity spans,
// synonym mappings, regex features and lookup tables. The container is
// read-only once parsed; readers build it, the validator and trainers
// only inspect it.
package nlu

// Entity is a labeled span inside an example utterance. Start and End are
// byte offsets into the plain (markup-free) text, End exclusive.
type Entity struct {
	Start int    `yaml:"start" json:"start"`
	End   int    `yaml:"end" json:"end"`
	Value string `yaml:"value" json:"value"`
	Type  string `yaml:"entity" json:"entity"`
	Role  string `yaml:"role,omitempty" json:"role,omitempty"`
	Group string `yaml:"group,omitempty" json:"group,omitempty"`
}

// Message is one training example: plain utterance text with its intent
// label and any annotated entities.
type Message struct {
	Text     string
	Intent   string
	Entities []Entity
}
