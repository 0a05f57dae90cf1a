package graph

import (
	"sort"
	"strings"
)

// Kind classifies what role a component plays in the pipeline.
type Kind string

const (
	KindTokenizer  Kind = "tokenizer"
	KindFeaturizer Kind = "featurizer"
	KindExtractor  Kind = "extractor"
	KindClassifier Kind = "classifier"
	KindSelector   Kind = "selector"
	KindMapper     Kind = "mapper"
	KindPolicy     Kind = "policy"
)

// SupportedData describes which dialogue training data a policy consumes.
type SupportedData string

const (
	MLData        SupportedData = "ml"
	RuleData      SupportedData = "rule"
	MLAndRuleData SupportedData = "ml_and_rule"
)

// ConsumesRuleData reports whether a policy trained with this setting
// reads rule steps from the story graph.
func (d SupportedData) ConsumesRuleData() bool {
	return d == RuleData || d == MLAndRuleData
}

// ComponentType describes one known pipeline component: its name as it
// appears in config files, its kind, and the traits the validator needs.
type ComponentType struct {
	Name string
	Kind Kind

	// Trainable marks extractors and classifiers that learn entities
	// from annotated examples (as opposed to pattern- or rule-based ones).
	Trainable bool

	// ExtractsEntities marks components that emit entity spans. DIET is
	// a classifier that also extracts, which is why Kind alone is not enough.
	ExtractsEntities bool

	// UsesPatternFeature marks components that can consume the "pattern"
	// feature derived from regexes and lookup tables.
	UsesPatternFeature bool

	// Policy traits. Zero values for non-policies.
	RuleHandling    bool
	TrainsOn        SupportedData
	DefaultPriority int
}

// IsPolicy reports whether the component is a dialogue-management policy.
func (c ComponentType) IsPolicy() bool { return c.Kind == KindPolicy }

// Component names as they appear in pipeline configs.
const (
	WhitespaceTokenizer        = "WhitespaceTokenizer"
	SpacyTokenizer             = "SpacyTokenizer"
	CountVectorsFeaturizer     = "CountVectorsFeaturizer"
	LexicalSyntacticFeaturizer = "LexicalSyntacticFeaturizer"
	RegexFeaturizer            = "RegexFeaturizer"
	CRFEntityExtractor         = "CRFEntityExtractor"
	MitieEntityExtractor       = "MitieEntityExtractor"
	RegexEntityExtractor       = "RegexEntityExtractor"
	DIETClassifier             = "DIETClassifier"
	EntitySynonymMapper        = "EntitySynonymMapper"
	ResponseSelector           = "ResponseSelector"
	RulePolicy                 = "RulePolicy"
	MemoizationPolicy          = "MemoizationPolicy"
	TEDPolicy                  = "TEDPolicy"
)

// knownComponents is the registry of component types the default recipe
// understands. Keys are the config-file names.
var knownComponents = map[string]ComponentType{
	WhitespaceTokenizer: {Name: WhitespaceTokenizer, Kind: KindTokenizer},
	SpacyTokenizer:      {Name: SpacyTokenizer, Kind: KindTokenizer},

	CountVectorsFeaturizer:     {Name: CountVectorsFeaturizer, Kind: KindFeaturizer},
	LexicalSyntacticFeaturizer: {Name: LexicalSyntacticFeaturizer, Kind: KindFeaturizer},
	RegexFeaturizer:            {Name: RegexFeaturizer, Kind: KindFeaturizer},

	CRFEntityExtractor: {
		Name: CRFEntityExtractor, Kind: KindExtractor,
		Trainable: true, ExtractsEntities: true, UsesPatternFeature: true,
	},
	MitieEntityExtractor: {
		Name: MitieEntityExtractor, Kind: KindExtractor,
		Trainable: true, ExtractsEntities: true,
	},
	RegexEntityExtractor: {
		Name: RegexEntityExtractor, Kind: KindExtractor,
		ExtractsEntities: true,
	},

	DIETClassifier: {
		Name: DIETClassifier, Kind: KindClassifier,
		Trainable: true, ExtractsEntities: true, UsesPatternFeature: true,
	},

	EntitySynonymMapper: {Name: EntitySynonymMapper, Kind: KindMapper},
	ResponseSelector:    {Name: ResponseSelector, Kind: KindSelector},

	RulePolicy: {
		Name: RulePolicy, Kind: KindPolicy,
		RuleHandling: true, TrainsOn: RuleData, DefaultPriority: 6,
	},
	MemoizationPolicy: {
		Name: MemoizationPolicy, Kind: KindPolicy,
		TrainsOn: MLData, DefaultPriority: 3,
	},
	TEDPolicy: {
		Name: TEDPolicy, Kind: KindPolicy,
		TrainsOn: MLData, DefaultPriority: 1,
	},
}

// LookupComponent returns the registered type for a config-file name.
func LookupComponent(name string) (ComponentType, bool) {
	c, ok := knownComponents[name]
	return c, ok
}

// KnownComponentNames returns all registered names, sorted. Used for
// "did you mean" style error messages.
func KnownComponentNames() []string {
	names := make([]string, 0, len(knownComponents))
	for n := range knownComponents {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// TypeNames renders component type names as a comma-separated list,
// sorted for deterministic messages.
func TypeNames(types []ComponentType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
