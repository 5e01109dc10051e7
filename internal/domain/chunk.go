package domain

import (
	"strings"
	"time"
)

// EntityType identifies the kind of business entity a chunk was derived from.
type EntityType string

// Supported entity types. One formatter exists per type.
const (
	TypeProject       EntityType = "project"
	TypeMaterial      EntityType = "material"
	TypeRack          EntityType = "rack"
	TypeMachine       EntityType = "machine"
	TypeClient        EntityType = "client"
	TypeSubcontractor EntityType = "subcontractor"
	TypeOrder         EntityType = "order"
	TypeProgress      EntityType = "progress"
	TypeExpense       EntityType = "expense"
	TypeTask          EntityType = "task"
	TypeNote          EntityType = "note"
	TypeAttachment    EntityType = "attachment"
	TypeRemark        EntityType = "remark"
)

// InvalidTypeBucket is the reserved stats bucket for chunks whose metadata
// cannot be parsed.
const InvalidTypeBucket = "invalid"

// EntityTypes lists all supported entity types.
var EntityTypes = []EntityType{
	TypeProject, TypeMaterial, TypeRack, TypeMachine, TypeClient,
	TypeSubcontractor, TypeOrder, TypeProgress, TypeExpense, TypeTask,
	TypeNote, TypeAttachment, TypeRemark,
}

// ParseEntityType validates a raw type string.
func ParseEntityType(s string) (EntityType, bool) {
	for _, t := range EntityTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// ChunkID derives the deterministic chunk id for an entity. Re-indexing the
// same entity always produces the same id, so writes are idempotent upserts.
func ChunkID(t EntityType, entityID string) string {
	return string(t) + "-" + entityID
}

// Metadata is the typed metadata record attached to every chunk.
type Metadata struct {
	Type       EntityType        `json:"type"`
	EntityID   string            `json:"entity_id"`
	EntityName string            `json:"entity_name"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Chunk is the atomic retrievable unit: a natural-language rendering of a
// business entity plus metadata and an optional embedding.
type Chunk struct {
	ID        string
	Content   string
	Metadata  Metadata
	Embedding []float32 // nil until an embedding call succeeded
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasEmbedding reports whether the chunk can participate in similarity search.
func (c Chunk) HasEmbedding() bool {
	return len(c.Embedding) > 0
}

// Filter narrows search candidates by entity type and/or entity id.
// The zero value matches everything.
type Filter struct {
	Type     EntityType
	EntityID string
}

// IsZero reports whether the filter matches all chunks.
func (f Filter) IsZero() bool {
	return f.Type == "" && f.EntityID == ""
}

// Match reports whether metadata satisfies the filter. Type matches exactly,
// entity id by substring.
func (f Filter) Match(m Metadata) bool {
	if f.Type != "" && m.Type != f.Type {
		return false
	}
	if f.EntityID != "" && !strings.Contains(m.EntityID, f.EntityID) {
		return false
	}
	return true
}

// StoreStats aggregates chunk counts for diagnostics.
type StoreStats struct {
	TotalDocuments          int            `json:"total_documents"`
	DocumentsWithEmbeddings int            `json:"documents_with_embeddings"`
	ByType                  map[string]int `json:"by_type"`
}
