package domain

import "time"

// Query is a single question posed to the RAG service.
type Query struct {
	Question string
	Scope    Filter // optional narrowing, e.g. to one project's chunks
	Limit    int    // max sources to retrieve; 0 means the service default
}

// Answer is the structured response to a Query. Its shape is always
// well-formed: failures degrade to a generic text with zero confidence,
// never to an error surfaced to the consumer.
type Answer struct {
	Text           string
	Sources        []Scored
	Confidence     float64
	Question       string
	ProcessingTime time.Duration
}

// Presentation tells the consuming chat UI how to show an answer.
type Presentation string

const (
	// PresentDirect shows the answer as-is.
	PresentDirect Presentation = "direct"
	// PresentHedged shows the answer with a moderate-confidence warning and
	// a suggestion to rephrase.
	PresentHedged Presentation = "hedged"
	// PresentSuppressed hides the generated answer and shows fixed
	// domain-navigation suggestions instead.
	PresentSuppressed Presentation = "suppressed"
)

// Confidence thresholds of the consumer contract. Externally observable;
// do not change without coordinating with the chat UI.
const (
	DirectConfidenceThreshold = 0.5
	HedgedConfidenceThreshold = 0.3
)

// Presentation applies the three-tier confidence policy.
func (a Answer) Presentation() Presentation {
	switch {
	case a.Confidence >= DirectConfidenceThreshold:
		return PresentDirect
	case a.Confidence >= HedgedConfidenceThreshold:
		return PresentHedged
	default:
		return PresentSuppressed
	}
}
