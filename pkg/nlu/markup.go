package nlu

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Entity markup inside example utterances:
//
//	[surface](label)             span labeled `label`, value = surface text
//	[surface](label:value)       span with an explicit canonical value
//	[surface]{"entity": "label", "role": "r", "group": "g", "value": "v"}
//
// The dict form carries role/group annotations the shorthand cannot.
var markupPattern = regexp.MustCompile(`\[([^\[\]]*)\](?:\(([^)]+)\)|\{([^{}]+)\})`)

type entityDict struct {
	Entity string `json:"entity"`
	Role   string `json:"role"`
	Group  string `json:"group"`
	Value  string `json:"value"`
}

// ParseMarkup strips entity markup from an example and returns the plain
// text together with the annotated spans, offsets relative to the plain
// text. A span whose canonical value differs from its surface text is a
// synonym declaration; SynonymsFromEntities picks those up.
func ParseMarkup(example string) (string, []Entity, error) {
	matches := markupPattern.FindAllStringSubmatchIndex(example, -1)
	if len(matches) == 0 {
		return example, nil, nil
	}

	var plain strings.Builder
	var entities []Entity
	last := 0

	for _, m := range matches {
		plain.WriteString(example[last:m[0]])
		surface := example[m[2]:m[3]]

		start := plain.Len()
		plain.WriteString(surface)
		end := plain.Len()

		ent := Entity{Start: start, End: end, Value: surface}
		switch {
		case m[4] >= 0: // (label) or (label:value)
			label := example[m[4]:m[5]]
			if name, value, found := strings.Cut(label, ":"); found {
				ent.Type = name
				ent.Value = value
			} else {
				ent.Type = label
			}
		case m[6] >= 0: // {"entity": ...}
			var d entityDict
			if err := json.Unmarshal([]byte("{"+example[m[6]:m[7]]+"}"), &d); err != nil {
				return "", nil, fmt.Errorf("entity annotation %q: %w", example[m[0]:m[1]], err)
			}
			if d.Entity == "" {
				return "", nil, fmt.Errorf("entity annotation %q: missing `entity` key", example[m[0]:m[1]])
			}
			ent.Type = d.Entity
			ent.Role = d.Role
			ent.Group = d.Group
			if d.Value != "" {
				ent.Value = d.Value
			}
		}

		entities = append(entities, ent)
		last = m[1]
	}
	plain.WriteString(example[last:])

	return plain.String(), entities, nil
}

// SynonymsFromEntities records surface→canonical pairs for every span
// whose value differs from the text it covers. Existing keys win: the
// first mapping seen for a surface form is kept.
func SynonymsFromEntities(plain string, entities []Entity, synonyms map[string]string) {
	for _, e := range entities {
		if e.Start < 0 || e.End > len(plain) || e.Start >= e.End {
			continue
		}
		surface := plain[e.Start:e.End]
		if e.Value == "" || e.Value == surface {
			continue
		}
		if _, exists := synonyms[surface]; !exists {
			synonyms[surface] = e.Value
		}
	}
}
