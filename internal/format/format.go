// Package format renders business entities into canonical natural-language
// chunks. Formatters are pure: the same entity state always yields the same
// content string, and missing optional fields render an explicit placeholder
// so the chunk shape stays predictable for prompt construction.
package format

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sitedock/assist/internal/domain"
)

// Placeholder substitutes missing optional fields.
const Placeholder = "not specified"

// Result is a formatted entity: the retrievable text plus its metadata record.
type Result struct {
	Content  string
	Metadata domain.Metadata
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

func date(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.Format("2006-01-02")
}

func money(amount float64) string {
	return fmt.Sprintf("%.2f EUR", amount)
}

func quantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func count(n int) string {
	return strconv.Itoa(n)
}

func meta(t domain.EntityType, id, name string, createdAt, updatedAt time.Time, extra map[string]string) domain.Metadata {
	return domain.Metadata{
		Type:       t,
		EntityID:   id,
		EntityName: name,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
		Extra:      extra,
	}
}
