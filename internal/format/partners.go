package format

import (
	"fmt"
	"strings"

	"github.com/sitedock/assist/internal/domain"
)

// Client renders a customer record.
func Client(c domain.Client) Result {
	var b strings.Builder
	fmt.Fprintf(&b, "Client %q, contact person: %s.\n", c.Name, orPlaceholder(c.ContactPerson))
	fmt.Fprintf(&b, "Email: %s. Phone: %s.\n", orPlaceholder(c.Email), orPlaceholder(c.Phone))
	fmt.Fprintf(&b, "Address: %s.", orPlaceholder(c.Address))

	return Result{
		Content: b.String(),
		Metadata: meta(domain.TypeClient, c.ID, c.Name, c.CreatedAt, c.UpdatedAt, map[string]string{
			"contact": c.ContactPerson,
		}),
	}
}

// Subcontractor renders an external trade partner.
func Subcontractor(s domain.Subcontractor) Result {
	var b strings.Builder
	fmt.Fprintf(&b, "Subcontractor %q works in trade: %s.\n", s.Name, orPlaceholder(s.Trade))
	fmt.Fprintf(&b, "Contact person: %s. Email: %s. Phone: %s.\n",
		orPlaceholder(s.ContactPerson), orPlaceholder(s.Email), orPlaceholder(s.Phone))
	fmt.Fprintf(&b, "Hourly rate: %s.", money(s.HourlyRate))

	return Result{
		Content: b.String(),
		Metadata: meta(domain.TypeSubcontractor, s.ID, s.Name, s.CreatedAt, s.UpdatedAt, map[string]string{
			"trade":   s.Trade,
			"contact": s.ContactPerson,
		}),
	}
}
