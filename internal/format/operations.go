package format

import (
	"fmt"
	"strings"

	"github.com/sitedock/assist/internal/domain"
)

// Order renders a purchase order.
func Order(o domain.Order) Result {
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s from supplier %s has status %s.\n",
		orPlaceholder(o.Number), orPlaceholder(o.Supplier), orPlaceholder(o.Status))
	fmt.Fprintf(&b, "Belongs to project %q. Ordered on %s.\n", orPlaceholder(o.ProjectName), date(o.OrderedAt))
	fmt.Fprintf(&b, "Contains %d items for a total of %s.", o.ItemCount, money(o.Total))

	return Result{
		Content: b.String(),
		Metadata: meta(domain.TypeOrder, o.ID, o.Number, o.CreatedAt, o.UpdatedAt, map[string]string{
			"status":     o.Status,
			"project_id": o.ProjectID,
			"supplier":   o.Supplier,
			"items":      count(o.ItemCount),
		}),
	}
}

// ProgressState renders the completion state of a project phase.
func ProgressState(p domain.ProgressState) Result {
	var b strings.Builder
	fmt.Fprintf(&b, "Progress of phase %q on project %q: %d%% complete, status %s.",
		orPlaceholder(p.Phase), orPlaceholder(p.ProjectName), p.Percent, orPlaceholder(p.Status))
	if p.Comment != "" {
		fmt.Fprintf(&b, "\nComment: %s.", p.Comment)
	}

	name := fmt.Sprintf("%s / %s", p.ProjectName, p.Phase)
	return Result{
		Content: b.String(),
		Metadata: meta(domain.TypeProgress, p.ID, name, p.CreatedAt, p.UpdatedAt, map[string]string{
			"status":     p.Status,
			"project_id": p.ProjectID,
			"percent":    count(p.Percent),
		}),
	}
}

// Expense renders a cost booked against a project.
func Expense(e domain.Expense) Result {
	content := fmt.Sprintf("Expense of %s in category %s on project %q, incurred on %s. Description: %s.",
		money(e.Amount), orPlaceholder(e.Category), orPlaceholder(e.ProjectName),
		date(e.IncurredAt), orPlaceholder(e.Description))

	name := fmt.Sprintf("%s (%s)", e.Category, money(e.Amount))
	return Result{
		Content: content,
		Metadata: meta(domain.TypeExpense, e.ID, name, e.CreatedAt, e.UpdatedAt, map[string]string{
			"category":   e.Category,
			"project_id": e.ProjectID,
		}),
	}
}

// Task renders a work item.
func Task(t domain.Task) Result {
	var b strings.Builder
	fmt.Fprintf(&b, "Task %q on project %q has status %s and priority %s.\n",
		t.Title, orPlaceholder(t.ProjectName), orPlaceholder(t.Status), orPlaceholder(t.Priority))
	fmt.Fprintf(&b, "Assigned to: %s. Due: %s.\n", orPlaceholder(t.AssignedTo), date(t.DueDate))
	fmt.Fprintf(&b, "Description: %s.", orPlaceholder(t.Description))

	return Result{
		Content: b.String(),
		Metadata: meta(domain.TypeTask, t.ID, t.Title, t.CreatedAt, t.UpdatedAt, map[string]string{
			"status":     t.Status,
			"priority":   t.Priority,
			"project_id": t.ProjectID,
			"assignee":   t.AssignedTo,
		}),
	}
}
