package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/skill-profiler/internal/ontology"
)

const (
	// snippetWindow is the number of characters captured on each side of
	// the first match when building the supporting snippet.
	snippetWindow = 100
	// snippetFallbackLen bounds the fallback snippet when the match
	// cannot be re-located in the text.
	snippetFallbackLen = 200

	baseConfidence    = 0.5
	perMentionBonus   = 0.1
	confidenceCeiling = 0.9
)

// MatchKeywords runs a case-insensitive substring search of the full
// ontology against the text. Confidence grows with mention count and
// saturates at the ceiling; a single mention scores 0.6.
func MatchKeywords(text string) []Candidate {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)

	var found []Candidate
	for _, skill := range ontology.All() {
		needle := strings.ToLower(skill.Name)
		count := strings.Count(lower, needle)
		if count == 0 {
			continue
		}

		confidence := baseConfidence + perMentionBonus*float64(count)
		if confidence > confidenceCeiling {
			confidence = confidenceCeiling
		}

		found = append(found, Candidate{
			Name:       skill.Name,
			Type:       string(skill.Type),
			Confidence: confidence,
			Mentions:   count,
			Snippet:    contextSnippet(text, lower, needle),
		})
	}
	return found
}

// contextSnippet returns a window of text around the first occurrence of
// needle, bounded by the text edges. Falls back to the opening of the
// text if the match cannot be located.
func contextSnippet(text, lower, needle string) string {
	idx := strings.Index(lower, needle)
	if idx < 0 {
		if len(text) > snippetFallbackLen {
			return text[:runeBoundaryBefore(text, snippetFallbackLen)]
		}
		return text
	}

	start := idx - snippetWindow
	if start < 0 {
		start = 0
	}
	start = runeBoundaryBefore(text, start)
	end := idx + len(needle) + snippetWindow
	if end > len(text) {
		end = len(text)
	}
	end = runeBoundaryBefore(text, end)
	return text[start:end]
}

// runeBoundaryBefore backs a byte offset off to the nearest rune start so
// window edges never split a multi-byte character.
func runeBoundaryBefore(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}
