package extract

import (
	"regexp"

	"github.com/jonathan/skill-profiler/internal/ontology"
)

// verbPattern is one implicit-skill check: a word-boundary regex over
// action verbs that signal a soft skill without naming it.
type verbPattern struct {
	skill      string
	confidence float64
	rationale  string
	re         *regexp.Regexp
}

// The four checks are independent; each fires at most once per document
// regardless of how many verbs from its cluster appear.
var verbPatterns = []verbPattern{
	{
		skill:      "Leadership",
		confidence: 0.7,
		rationale:  "found leadership action verbs",
		re:         regexp.MustCompile(`(?i)\b(led|managed|coordinated|directed|supervised|mentored)\b`),
	},
	{
		skill:      "Communication",
		confidence: 0.6,
		rationale:  "found communication action verbs",
		re:         regexp.MustCompile(`(?i)\b(presented|explained|collaborated|discussed|negotiated)\b`),
	},
	{
		skill:      "Problem Solving",
		confidence: 0.65,
		rationale:  "found problem-solving action verbs",
		re:         regexp.MustCompile(`(?i)\b(solved|optimized|improved|debugged|resolved|fixed)\b`),
	},
	{
		skill:      "Project Management",
		confidence: 0.6,
		rationale:  "found project management terminology",
		re:         regexp.MustCompile(`(?i)\b(project|timeline|deadline|milestone|deliverable)\b`),
	},
}

// InferPatterns detects implicit soft skills from action-verb clusters.
func InferPatterns(text string) []Candidate {
	if text == "" {
		return nil
	}

	var found []Candidate
	for _, p := range verbPatterns {
		if !p.re.MatchString(text) {
			continue
		}
		found = append(found, Candidate{
			Name:       p.skill,
			Type:       string(ontology.TypeOf(p.skill)),
			Confidence: p.confidence,
			Rationale:  p.rationale,
			Mentions:   1,
		})
	}
	return found
}
