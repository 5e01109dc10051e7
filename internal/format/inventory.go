package format

import (
	"fmt"
	"strings"

	"github.com/sitedock/assist/internal/domain"
)

// Material renders a stock item.
func Material(m domain.Material) Result {
	var b strings.Builder
	fmt.Fprintf(&b, "Material %q: %s %s in stock.\n", m.Name, quantity(m.Quantity), orPlaceholder(m.Unit))
	fmt.Fprintf(&b, "Stored at: %s. Supplier: %s.\n", orPlaceholder(m.Location), orPlaceholder(m.Supplier))
	fmt.Fprintf(&b, "Minimum stock level: %s %s.", quantity(m.MinStock), orPlaceholder(m.Unit))
	if m.Quantity < m.MinStock {
		b.WriteString(" Stock is below the minimum level.")
	}

	return Result{
		Content: b.String(),
		Metadata: meta(domain.TypeMaterial, m.ID, m.Name, m.CreatedAt, m.UpdatedAt, map[string]string{
			"location": m.Location,
			"unit":     m.Unit,
			"quantity": quantity(m.Quantity),
		}),
	}
}

// Rack renders a storage rack.
func Rack(r domain.Rack) Result {
	free := r.Capacity - r.Occupied
	content := fmt.Sprintf("Rack %q at %s holds %d of %d slots; %d free.",
		r.Name, orPlaceholder(r.Location), r.Occupied, r.Capacity, free)

	return Result{
		Content: content,
		Metadata: meta(domain.TypeRack, r.ID, r.Name, r.CreatedAt, r.UpdatedAt, map[string]string{
			"location": r.Location,
			"capacity": count(r.Capacity),
			"occupied": count(r.Occupied),
		}),
	}
}

// Machine renders a piece of equipment.
func Machine(m domain.Machine) Result {
	var b strings.Builder
	fmt.Fprintf(&b, "Machine %q (model %s, serial %s) has status %s.\n",
		m.Name, orPlaceholder(m.Model), orPlaceholder(m.SerialNumber), orPlaceholder(m.Status))
	fmt.Fprintf(&b, "Current location: %s. Next service due: %s.",
		orPlaceholder(m.Location), date(m.NextServiceAt))

	return Result{
		Content: b.String(),
		Metadata: meta(domain.TypeMachine, m.ID, m.Name, m.CreatedAt, m.UpdatedAt, map[string]string{
			"status":   m.Status,
			"location": m.Location,
			"model":    m.Model,
		}),
	}
}
