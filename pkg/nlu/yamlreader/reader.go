// Package yamlreader deserializes YAML training-data files into the
// in-memory nlu.TrainingData container. The reader is deliberately
// tolerant: malformed or unrecognized blocks are skipped with an advisory
// so one bad block never discards an otherwise valid file.
package yamlreader

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/narendrapsgim/rasa/pkg/advisory"
	"github.com/narendrapsgim/rasa/pkg/nlu"
)

// Top-level and block keys of the training-data format.
const (
	KeyNLU      = "nlu"
	KeyIntent   = "intent"
	KeySynonym  = "synonym"
	KeyRegex    = "regex"
	KeyLookup   = "lookup"
	KeyExamples = "examples"
	KeyText     = "text"
)

// ReadFile parses a training-data file.
func ReadFile(path string) (*nlu.TrainingData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read training data: %w", err)
	}
	return Read(data, path)
}

// Read parses training-data YAML. filename is used in advisory messages
// only. The error is non-nil only when the document as a whole is not
// valid YAML; block-level problems are advisories.
func Read(data []byte, filename string) (*nlu.TrainingData, error) {
	var doc struct {
		NLU []yaml.Node `yaml:"nlu"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse training data yaml: %w", err)
	}

	r := &reader{
		filename: filename,
		synonyms: map[string]string{},
	}
	for _, block := range doc.NLU {
		r.parseBlock(block)
	}

	return nlu.New(r.examples, r.synonyms, r.regexes, r.lookups), nil
}

type reader struct {
	filename string
	examples []nlu.Message
	synonyms map[string]string
	regexes  []nlu.RegexFeature
	lookups  []nlu.LookupTable
}

func (r *reader) warnf(format string, args ...any) {
	advisory.Warn(fmt.Sprintf("%s: %s", r.filename, fmt.Sprintf(format, args...)),
		advisory.DocsTrainingData)
}

func (r *reader) parseBlock(block yaml.Node) {
	var item map[string]any
	if err := block.Decode(&item); err != nil {
		r.warnf("items under the `%s` key must be YAML mappings; block at line %d skipped",
			KeyNLU, block.Line)
		return
	}

	switch {
	case item[KeyIntent] != nil:
		r.parseIntent(item)
	case item[KeySynonym] != nil:
		r.parseSynonym(item)
	case item[KeyRegex] != nil:
		r.parseRegex(item)
	case item[KeyLookup] != nil:
		r.parseLookup(item)
	default:
		r.warnf("block at line %d has none of the supported keys `%s`, `%s`, `%s`, `%s`; skipped",
			block.Line, KeyIntent, KeySynonym, KeyRegex, KeyLookup)
	}
}

func (r *reader) parseIntent(item map[string]any) {
	intent, _ := item[KeyIntent].(string)
	if intent == "" {
		r.warnf("intent block has an empty name; skipped")
		return
	}

	lines, ok := exampleLines(item[KeyExamples])
	if !ok {
		r.warnf("intent %q has an unreadable `%s` block; skipped", intent, KeyExamples)
		return
	}
	if len(lines) == 0 {
		r.warnf("intent %q has no examples; skipped", intent)
		return
	}

	for _, line := range lines {
		plain, entities, err := nlu.ParseMarkup(line)
		if err != nil {
			r.warnf("intent %q example skipped: %v", intent, err)
			continue
		}
		nlu.SynonymsFromEntities(plain, entities, r.synonyms)
		r.examples = append(r.examples, nlu.Message{
			Text:     plain,
			Intent:   intent,
			Entities: entities,
		})
	}
}

func (r *reader) parseSynonym(item map[string]any) {
	name, _ := item[KeySynonym].(string)
	if name == "" {
		r.warnf("synonym block has an empty name; skipped")
		return
	}

	lines, ok := exampleLines(item[KeyExamples])
	if !ok {
		r.warnf("synonym %q has an unreadable `%s` block; skipped", name, KeyExamples)
		return
	}
	if len(lines) == 0 {
		r.warnf("synonym %q has no examples; skipped", name)
		return
	}

	for _, surface := range lines {
		if _, exists := r.synonyms[surface]; !exists {
			r.synonyms[surface] = name
		}
	}
}

func (r *reader) parseRegex(item map[string]any) {
	name, _ := item[KeyRegex].(string)
	if name == "" {
		r.warnf("regex block has an empty name; skipped")
		return
	}

	lines, ok := exampleLines(item[KeyExamples])
	if !ok {
		r.warnf("regex %q has an unreadable `%s` block; skipped", name, KeyExamples)
		return
	}
	if len(lines) == 0 {
		r.warnf("regex %q has no examples; skipped", name)
		return
	}

	for _, pattern := range lines {
		r.regexes = append(r.regexes, nlu.RegexFeature{Name: name, Pattern: pattern})
	}
}

func (r *reader) parseLookup(item map[string]any) {
	name, _ := item[KeyLookup].(string)
	if name == "" {
		r.warnf("lookup block has an empty name; skipped")
		return
	}

	lines, ok := exampleLines(item[KeyExamples])
	if !ok {
		r.warnf("lookup %q has an unreadable `%s` block; skipped", name, KeyExamples)
		return
	}
	if len(lines) == 0 {
		r.warnf("lookup %q has no examples; skipped", name)
		return
	}

	r.lookups = append(r.lookups, nlu.LookupTable{Name: name, Elements: lines})
}

// exampleLines normalizes the `examples` field. Accepted shapes: a
// multi-line bullet string, a sequence of strings, or a sequence of
// mappings with a `text` key. Returns ok=false for anything else.
func exampleLines(v any) ([]string, bool) {
	switch val := v.(type) {
	case nil:
		return nil, true
	case string:
		var out []string
		for _, line := range strings.Split(val, "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimPrefix(line, "- ")
			if line != "" {
				out = append(out, line)
			}
		}
		return out, true
	case []any:
		var out []string
		for _, item := range val {
			switch it := item.(type) {
			case string:
				if s := strings.TrimSpace(it); s != "" {
					out = append(out, s)
				}
			case map[string]any:
				if s, ok := it[KeyText].(string); ok && strings.TrimSpace(s) != "" {
					out = append(out, strings.TrimSpace(s))
				}
			}
		}
		return out, true
	default:
		return nil, false
	}
}
