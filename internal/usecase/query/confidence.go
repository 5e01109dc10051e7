package query

import (
	"time"

	"github.com/sitedock/assist/internal/domain"
)

// Confidence factor weights. The weighted sum — not the language model — is
// how the system self-assesses answer trustworthiness, so it must be
// reproducible from the same inputs.
const (
	weightSourceCount   = 0.30
	weightContentLength = 0.25
	weightTypeDiversity = 0.20
	weightRecency       = 0.15
	weightRichMetadata  = 0.10
)

// richMetadataFields is the Extra-field count above which a source counts as
// richly annotated.
const richMetadataFields = 3

// ConfidenceConfig holds the tunable reference values used to normalize the
// confidence factors. The reference length and diversity have no derivation
// beyond operational experience; they are configuration, not invariants.
type ConfidenceConfig struct {
	ReferenceContentLength int           // characters considered "substantial"
	ReferenceTypeDiversity int           // distinct entity types considered "diverse"
	StalenessHorizon       time.Duration // age at which a source contributes zero recency
	SparseMetadataLevel    float64       // metadata factor when no source is rich
	Cap                    float64       // never report full certainty
}

// DefaultConfidenceConfig returns the standard reference values.
func DefaultConfidenceConfig() ConfidenceConfig {
	return ConfidenceConfig{
		ReferenceContentLength: 300,
		ReferenceTypeDiversity: 3,
		StalenessHorizon:       365 * 24 * time.Hour,
		SparseMetadataLevel:    0.4,
		Cap:                    0.95,
	}
}

// confidence computes the weighted sum of five independently normalized
// signals and caps the result.
func (c ConfidenceConfig) confidence(sources []domain.Scored, limit int, now time.Time) float64 {
	if len(sources) == 0 {
		return 0
	}

	score := weightSourceCount*c.sourceCountFactor(len(sources), limit) +
		weightContentLength*c.contentLengthFactor(sources) +
		weightTypeDiversity*c.typeDiversityFactor(sources) +
		weightRecency*c.recencyFactor(sources, now) +
		weightRichMetadata*c.metadataFactor(sources)

	if score > c.Cap {
		return c.Cap
	}
	return score
}

func (c ConfidenceConfig) sourceCountFactor(count, limit int) float64 {
	if limit <= 0 {
		return 0
	}
	return clamp01(float64(count) / float64(limit))
}

func (c ConfidenceConfig) contentLengthFactor(sources []domain.Scored) float64 {
	total := 0
	for _, s := range sources {
		total += len(s.Chunk.Content)
	}
	avg := float64(total) / float64(len(sources))
	return clamp01(avg / float64(c.ReferenceContentLength))
}

func (c ConfidenceConfig) typeDiversityFactor(sources []domain.Scored) float64 {
	types := make(map[domain.EntityType]struct{}, len(sources))
	for _, s := range sources {
		types[s.Chunk.Metadata.Type] = struct{}{}
	}
	return clamp01(float64(len(types)) / float64(c.ReferenceTypeDiversity))
}

// recencyFactor averages per-source freshness against the staleness horizon.
func (c ConfidenceConfig) recencyFactor(sources []domain.Scored, now time.Time) float64 {
	var sum float64
	for _, s := range sources {
		updated := s.Chunk.Metadata.UpdatedAt
		if updated.IsZero() {
			updated = s.Chunk.UpdatedAt
		}
		age := now.Sub(updated)
		sum += clamp01(1 - age.Seconds()/c.StalenessHorizon.Seconds())
	}
	return sum / float64(len(sources))
}

// metadataFactor is two-level: full when at least one source carries rich
// (>3-field) metadata, the configured sparse level otherwise.
func (c ConfidenceConfig) metadataFactor(sources []domain.Scored) float64 {
	for _, s := range sources {
		if len(s.Chunk.Metadata.Extra) > richMetadataFields {
			return 1
		}
	}
	return c.SparseMetadataLevel
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
