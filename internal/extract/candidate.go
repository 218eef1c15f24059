// Package extract provides the skill-detection strategies that run over
// parsed document text: keyword matching against the ontology and
// pattern-based inference of implicit soft skills.
package extract

// Candidate is a single skill proposal from one extraction strategy.
// All strategies produce candidates in this shape so the aggregator can
// merge them without caring which strategy they came from.
type Candidate struct {
	Name       string  `json:"skill"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
	Snippet    string  `json:"snippet,omitempty"`
	Mentions   int     `json:"mentions,omitempty"`
	Rationale  string  `json:"rationale,omitempty"`

	// Provenance, stamped by the orchestrator per source document.
	SourceType string `json:"source_type,omitempty"`
	SourceURL  string `json:"source_url,omitempty"`
}
