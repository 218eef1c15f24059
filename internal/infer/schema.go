package infer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/skill-profiler/internal/extract"
	"github.com/jonathan/skill-profiler/internal/fetch"
	"github.com/jonathan/skill-profiler/internal/ontology"
)

// candidateListSchema validates the skill list returned by the cloud
// provider before it is trusted.
const candidateListSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "skill": {"type": "string", "minLength": 1},
      "type": {"type": "string", "enum": ["hard", "soft", "emerging"]},
      "confidence": {"type": "number", "minimum": 0, "maximum": 1},
      "rationale": {"type": "string"}
    },
    "required": ["skill", "confidence"]
  }
}`

// llmSkill is the wire shape of one provider-proposed skill.
type llmSkill struct {
	Skill      string  `json:"skill"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// parseCandidates validates and decodes the provider's JSON output into
// candidate records stamped with LLM provenance.
func parseCandidates(raw string) ([]extract.Candidate, error) {
	cleaned := cleanJSONBlock(raw)

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(candidateListSchema),
		gojsonschema.NewStringLoader(cleaned),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate provider output: %w", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, fmt.Errorf("provider output failed schema validation: %s", strings.Join(msgs, "; "))
	}

	var skills []llmSkill
	if err := json.Unmarshal([]byte(cleaned), &skills); err != nil {
		return nil, fmt.Errorf("failed to decode provider output: %w", err)
	}

	candidates := make([]extract.Candidate, 0, len(skills))
	for _, s := range skills {
		name := strings.TrimSpace(s.Skill)
		if name == "" {
			continue
		}
		// Prefer the canonical catalog form when the name is known.
		if known, ok := ontology.Lookup(name); ok {
			name = known.Name
		}
		skillType := s.Type
		if skillType == "" {
			skillType = string(ontology.TypeOf(name))
		}
		candidates = append(candidates, extract.Candidate{
			Name:       name,
			Type:       skillType,
			Confidence: s.Confidence,
			Rationale:  s.Rationale,
			SourceType: string(fetch.SourceLLM),
		})
	}
	return candidates, nil
}

// cleanJSONBlock removes markdown code block wrappers from JSON.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
