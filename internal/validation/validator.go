// Package validation checks a pipeline configuration against the project's
// training data and domain. Genuine mismatches that would break training
// are returned as errors; likely mistakes that training would silently
// tolerate are emitted as advisories.
package validation

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/narendrapsgim/rasa/internal/importer"
	"github.com/narendrapsgim/rasa/internal/logging"
	"github.com/narendrapsgim/rasa/pkg/advisory"
	"github.com/narendrapsgim/rasa/pkg/dialogue"
	"github.com/narendrapsgim/rasa/pkg/graph"
	"github.com/narendrapsgim/rasa/pkg/nlu"
)

// Validator checks one graph schema. It precomputes the views every rule
// needs: the set of component types in use and the policy nodes.
type Validator struct {
	schema         *graph.Schema
	componentTypes map[string]graph.ComponentType
	policyNodes    []graph.SchemaNode
	log            *slog.Logger
}

// New builds a Validator for the given schema.
func New(schema *graph.Schema) *Validator {
	v := &Validator{
		schema:         schema,
		componentTypes: schema.ComponentTypes(),
		log:            logging.New("validation"),
	}
	for _, node := range schema.Nodes() {
		if node.Uses.IsPolicy() {
			v.policyNodes = append(v.policyNodes, node)
		}
	}
	return v
}

// Validate runs every check against the importer's data. The first hard
// mismatch is returned; advisories go to the configured advisory sink.
func (v *Validator) Validate(ctx context.Context, imp importer.Importer) error {
	v.log.Debug("validating configuration",
		"nodes", len(v.schema.Nodes()), "policies", len(v.policyNodes))

	nluData, err := imp.NLUData(ctx)
	if err != nil {
		return fmt.Errorf("load nlu data: %w", err)
	}
	if err := v.validateNLU(nluData); err != nil {
		return err
	}

	stories, err := imp.Stories(ctx)
	if err != nil {
		return fmt.Errorf("load stories: %w", err)
	}
	domain, err := imp.Domain(ctx)
	if err != nil {
		return fmt.Errorf("load domain: %w", err)
	}
	return v.validateCore(stories, domain)
}

func (v *Validator) validateNLU(data *nlu.TrainingData) error {
	if err := v.checkSingleTokenizer(); err != nil {
		return err
	}
	if err := graph.ValidateFeaturizerConfigs(v.schema.NodesOfKind(graph.KindFeaturizer)); err != nil {
		return err
	}
	v.warnOfCompetingExtractors()
	v.warnOfCompetitionWithRegexExtractor(data)
	v.warnIfTrainingDataIsUnused(data)
	return nil
}

// checkSingleTokenizer rejects configurations with more than one
// tokenizer; text can only be tokenized one way per model.
func (v *Validator) checkSingleTokenizer() error {
	tokenizers := v.schema.NodesOfKind(graph.KindTokenizer)
	if len(tokenizers) <= 1 {
		return nil
	}
	types := make([]graph.ComponentType, 0, len(tokenizers))
	for _, node := range tokenizers {
		types = append(types, node.Uses)
	}
	return fmt.Errorf("%w: the configuration contains more than one tokenizer, "+
		"which is not possible at this time. You can only use one tokenizer. "+
		"The configuration contains the following tokenizers: %s",
		graph.ErrConfig, graph.TypeNames(types))
}

// trainableExtractors returns the component types in use that learn
// entities from annotated examples.
func (v *Validator) trainableExtractors() []graph.ComponentType {
	var out []graph.ComponentType
	for _, ct := range v.componentTypes {
		if ct.Trainable && ct.ExtractsEntities {
			out = append(out, ct)
		}
	}
	return out
}

func (v *Validator) hasType(name string) bool {
	_, ok := v.componentTypes[name]
	return ok
}

func (v *Validator) hasAnyType(names ...string) bool {
	for _, name := range names {
		if v.hasType(name) {
			return true
		}
	}
	return false
}

// warnOfCompetingExtractors flags configurations where several trainable
// extractors learn from the same annotations: the same entity can then be
// extracted more than once.
func (v *Validator) warnOfCompetingExtractors() {
	extractors := v.trainableExtractors()
	if len(extractors) <= 1 {
		return
	}
	advisory.Warn(fmt.Sprintf(
		"You have defined multiple entity extractors that do the same job in "+
			"your configuration: %s. This can lead to the same entity getting "+
			"extracted multiple times. Please read the documentation section on "+
			"entity extractors to make sure you understand the implications.",
		graph.TypeNames(extractors)),
		advisory.DocsComponents+"#entity-extractors")
}

// warnOfCompetitionWithRegexExtractor flags the case where both the
// pattern-based and a statistical extractor target the same entity type:
// a regex pattern and annotated examples exist for it at the same time.
func (v *Validator) warnOfCompetitionWithRegexExtractor(data *nlu.TrainingData) {
	general := v.trainableExtractors()
	if len(general) == 0 || !v.hasType(graph.RegexEntityExtractor) {
		return
	}

	regexTypes := map[string]struct{}{}
	for _, rf := range data.RegexFeatures() {
		regexTypes[rf.Name] = struct{}{}
	}
	var overlap []string
	for entity := range data.Entities() {
		if _, ok := regexTypes[entity]; ok {
			overlap = append(overlap, entity)
		}
	}
	if len(overlap) == 0 {
		return
	}
	sort.Strings(overlap)

	advisory.Warn(fmt.Sprintf(
		"You have an overlap between the '%s' and the statistical entity "+
			"extractors %s in your configuration. Specifically both types of "+
			"extractors will attempt to extract entities of the types %s. "+
			"This can lead to multiple extraction of entities. Please read "+
			"'%s''s documentation section to make sure you understand the "+
			"implications.",
		graph.RegexEntityExtractor, graph.TypeNames(general),
		strings.Join(overlap, ", "), graph.RegexEntityExtractor),
		advisory.DocsComponents+"#regexentityextractor")
}

// warnIfTrainingDataIsUnused emits an advisory for every kind of training
// data no configured component would consume.
func (v *Validator) warnIfTrainingDataIsUnused(data *nlu.TrainingData) {
	if len(data.ResponseExamples()) > 0 && !v.hasType(graph.ResponseSelector) {
		advisory.Warn(fmt.Sprintf(
			"You have defined training data with examples for training a "+
				"response selector, but your NLU configuration does not include "+
				"a response selector component. To train a model on your response "+
				"selector data, add a '%s' to your configuration.",
			graph.ResponseSelector),
			advisory.DocsComponents)
	}

	trainable := v.trainableExtractors()
	if len(data.EntityExamples()) > 0 && len(trainable) == 0 {
		advisory.Warn(fmt.Sprintf(
			"You have defined training data consisting of entity examples, but "+
				"your NLU configuration does not include an entity extractor "+
				"trained on your training data. To extract non-pretrained "+
				"entities, add one of %s, %s, %s to your configuration.",
			graph.MitieEntityExtractor, graph.CRFEntityExtractor, graph.DIETClassifier),
			advisory.DocsComponents)
	}

	if len(data.EntityExamples()) > 0 &&
		!v.hasAnyType(graph.DIETClassifier, graph.CRFEntityExtractor) &&
		data.EntityRolesGroupsUsed() {
		advisory.Warn(fmt.Sprintf(
			"You have defined training data with entities that have "+
				"roles/groups, but your NLU configuration does not include a "+
				"'%s' or a '%s'. To train entities that have roles/groups, add "+
				"either '%s' or '%s' to your configuration.",
			graph.DIETClassifier, graph.CRFEntityExtractor,
			graph.DIETClassifier, graph.CRFEntityExtractor),
			advisory.DocsComponents)
	}

	if len(data.RegexFeatures()) > 0 &&
		!v.hasAnyType(graph.RegexFeaturizer, graph.RegexEntityExtractor) {
		advisory.Warn(fmt.Sprintf(
			"You have defined training data with regexes, but your NLU "+
				"configuration does not include a '%s' or a '%s'. To use "+
				"regexes, include either of them in your configuration.",
			graph.RegexFeaturizer, graph.RegexEntityExtractor),
			advisory.DocsComponents)
	}

	if len(data.LookupTables()) > 0 {
		if !v.hasAnyType(graph.RegexFeaturizer, graph.RegexEntityExtractor) {
			advisory.Warn(fmt.Sprintf(
				"You have defined training data consisting of lookup tables, "+
					"but your NLU configuration does not include a featurizer or "+
					"an entity extractor using the lookup table. To use the lookup "+
					"tables, include either a '%s' or a '%s' in your configuration.",
				graph.RegexFeaturizer, graph.RegexEntityExtractor),
				advisory.DocsComponents)
		}

		switch {
		case !v.hasAnyType(graph.CRFEntityExtractor, graph.DIETClassifier):
			advisory.Warn(fmt.Sprintf(
				"You have defined training data consisting of lookup tables, "+
					"but your NLU configuration does not include any components "+
					"that use the features created from the lookup table. To make "+
					"use of those features, add a '%s' or a '%s' with the "+
					"'pattern' feature to your configuration.",
				graph.DIETClassifier, graph.CRFEntityExtractor),
				advisory.DocsComponents)
		case v.hasType(graph.CRFEntityExtractor) && !v.crfHasPatternFeature():
			advisory.Warn(fmt.Sprintf(
				"You have defined training data consisting of lookup tables, "+
					"but your NLU configuration's '%s' does not include the "+
					"'pattern' feature. To featurize lookup tables, add the "+
					"'pattern' feature to the '%s' in your configuration.",
				graph.CRFEntityExtractor, graph.CRFEntityExtractor),
				advisory.DocsComponents)
		}
	}

	if len(data.EntitySynonyms()) > 0 && !v.hasType(graph.EntitySynonymMapper) {
		advisory.Warn(fmt.Sprintf(
			"You have defined synonyms in your training data, but your NLU "+
				"configuration does not include an '%s'. To map synonyms, add "+
				"an '%s' to your configuration.",
			graph.EntitySynonymMapper, graph.EntitySynonymMapper),
			advisory.DocsComponents)
	}
}

const crfFeaturePattern = "pattern"

// crfHasPatternFeature reports whether any conditional random field
// extractor node enables the 'pattern' feature. The `features` option is
// a list of feature lists (one per token window position).
func (v *Validator) crfHasPatternFeature() bool {
	for _, node := range v.schema.NodesUsing(graph.CRFEntityExtractor) {
		features, ok := node.Config["features"].([]any)
		if !ok {
			continue
		}
		for _, window := range features {
			list, ok := window.([]any)
			if !ok {
				continue
			}
			for _, f := range list {
				if f == crfFeaturePattern {
					return true
				}
			}
		}
	}
	return false
}

func (v *Validator) validateCore(stories *dialogue.StoryGraph, domain *dialogue.Domain) error {
	if len(v.policyNodes) == 0 {
		if stories.HasSteps() {
			advisory.Warn(
				"Found data for training policies but no policy was configured.",
				advisory.DocsPolicies)
		}
		return nil
	}

	v.warnIfNoRulePolicy()
	if err := v.checkFormsHaveRulePolicy(domain); err != nil {
		return err
	}
	if err := v.checkRulePoliciesAgainstDomain(domain); err != nil {
		return err
	}
	v.warnIfPrioritiesAreNotUnique()
	v.warnIfRuleDataUnusedOrMissing(stories)
	return nil
}

func (v *Validator) rulePolicyNodes() []graph.SchemaNode {
	return v.schema.NodesUsing(graph.RulePolicy)
}

func (v *Validator) warnIfNoRulePolicy() {
	if len(v.rulePolicyNodes()) > 0 {
		return
	}
	advisory.Warn(fmt.Sprintf(
		"'%s' is not included in the model's policy configuration. Default "+
			"intents such as '%s' and '%s' will not trigger actions '%s' and '%s'.",
		graph.RulePolicy, dialogue.IntentRestart, dialogue.IntentBack,
		dialogue.ActionRestart, dialogue.ActionBack),
		advisory.DocsDefaultActions)
}

// checkFormsHaveRulePolicy rejects domains that declare forms while no
// rule policy is configured; forms are driven by rules.
func (v *Validator) checkFormsHaveRulePolicy(domain *dialogue.Domain) error {
	if len(domain.FormNames()) == 0 || len(v.rulePolicyNodes()) > 0 {
		return nil
	}
	return fmt.Errorf("%w: you have defined a form action, but have not added "+
		"the '%s' to your policy ensemble. Either remove all forms from your "+
		"domain or add the '%s' to your policy configuration",
		dialogue.ErrInvalidDomain, graph.RulePolicy, graph.RulePolicy)
}

func (v *Validator) checkRulePoliciesAgainstDomain(domain *dialogue.Domain) error {
	for _, node := range v.rulePolicyNodes() {
		if err := dialogue.CheckRulePolicyDomainCompatibility(node.Config, domain); err != nil {
			return err
		}
	}
	return nil
}

// warnIfPrioritiesAreNotUnique flags policies that end up with the same
// effective priority; ties make the ensemble's choice arbitrary.
func (v *Validator) warnIfPrioritiesAreNotUnique() {
	byPriority := map[int][]graph.ComponentType{}
	for _, node := range v.policyNodes {
		priority := node.IntOption("priority", node.Uses.DefaultPriority)
		byPriority[priority] = append(byPriority[priority], node.Uses)
	}
	for priority, types := range byPriority {
		if len(types) < 2 {
			continue
		}
		advisory.Warn(fmt.Sprintf(
			"Found policies %s with same priority %d in the policy ensemble. "+
				"When personalizing priorities, be sure to give all policies "+
				"different priorities.",
			graph.TypeNames(types), priority),
			advisory.DocsPolicies)
	}
}

// warnIfRuleDataUnusedOrMissing flags the two mismatches between
// rule-handling policies and rule training data.
func (v *Validator) warnIfRuleDataUnusedOrMissing(stories *dialogue.StoryGraph) {
	consumesRuleData := false
	for _, node := range v.policyNodes {
		if node.Uses.TrainsOn.ConsumesRuleData() {
			consumesRuleData = true
			break
		}
	}
	hasRuleData := stories.HasRules()

	switch {
	case consumesRuleData && !hasRuleData:
		advisory.Warn(fmt.Sprintf(
			"Found a rule-based policy in your configuration but no rule-based "+
				"training data. Please add rule-based stories to your training "+
				"data or remove the rule-based policy ('%s') from your "+
				"configuration.", graph.RulePolicy),
			advisory.DocsRules)
	case !consumesRuleData && hasRuleData:
		advisory.Warn(fmt.Sprintf(
			"Found rule-based training data but no policy supporting rule-based "+
				"data. Please add '%s' or another rule-supporting policy to the "+
				"`policies` section in your configuration.", graph.RulePolicy),
			advisory.DocsRules)
	}
}
