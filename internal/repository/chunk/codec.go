package chunk

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/sitedock/assist/internal/domain"
)

// Hash field names of a stored chunk record.
const (
	fieldContent   = "content"
	fieldMetadata  = "metadata"
	fieldEmbedding = "embedding"
	fieldCreatedAt = "created_at"
	fieldUpdatedAt = "updated_at"
)

// encodeFields serializes a chunk into hash fields. The embedding field is
// empty when no embedding is present.
func encodeFields(c domain.Chunk) (map[string]string, error) {
	meta, err := json.Marshal(c.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	fields := map[string]string{
		fieldContent:   c.Content,
		fieldMetadata:  string(meta),
		fieldEmbedding: encodeVector(c.Embedding),
		fieldCreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
		fieldUpdatedAt: c.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	return fields, nil
}

// decodeFields reconstructs a chunk from hash fields. A metadata parse
// failure returns ErrInvalidMetadata; callers decide whether that is fatal.
func decodeFields(id string, fields map[string]string) (domain.Chunk, error) {
	c := domain.Chunk{ID: id, Content: fields[fieldContent]}

	if raw := fields[fieldMetadata]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &c.Metadata); err != nil {
			return c, fmt.Errorf("%w: %s: %v", domain.ErrInvalidMetadata, id, err)
		}
	} else {
		return c, fmt.Errorf("%w: %s: empty metadata", domain.ErrInvalidMetadata, id)
	}

	if raw := fields[fieldEmbedding]; raw != "" {
		vec, err := decodeVector(raw)
		if err != nil {
			return c, fmt.Errorf("decode embedding %s: %w", id, err)
		}
		c.Embedding = vec
	}

	if t, err := time.Parse(time.RFC3339Nano, fields[fieldCreatedAt]); err == nil {
		c.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, fields[fieldUpdatedAt]); err == nil {
		c.UpdatedAt = t
	}

	return c, nil
}

// encodeVector packs float32s little-endian and base64-encodes them for
// storage in a hash field.
func encodeVector(v []float32) string {
	if len(v) == 0 {
		return ""
	}
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return base64.StdEncoding.EncodeToString(buf)
}

func decodeVector(s string) ([]float32, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("base64 decode: %w", err)
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid vector data: len=%d (not multiple of 4)", len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
