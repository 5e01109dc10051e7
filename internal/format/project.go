package format

import (
	"fmt"
	"strings"

	"github.com/sitedock/assist/internal/domain"
)

// Project renders a project into a retrievable chunk.
func Project(p domain.Project) Result {
	var b strings.Builder
	fmt.Fprintf(&b, "Project %q has status %s.\n", p.Name, orPlaceholder(p.Status))
	fmt.Fprintf(&b, "Location: %s. Client: %s.\n", orPlaceholder(p.Location), orPlaceholder(p.ClientName))
	fmt.Fprintf(&b, "Runs from %s to %s. Budget: %s.\n", date(p.StartDate), date(p.EndDate), money(p.Budget))
	fmt.Fprintf(&b, "Description: %s.\n", orPlaceholder(p.Description))
	fmt.Fprintf(&b, "The project has %d notes, %d attached documents and %d inspection remarks.",
		len(p.Notes), len(p.Attachments), len(p.Remarks))

	return Result{
		Content: b.String(),
		Metadata: meta(domain.TypeProject, p.ID, p.Name, p.CreatedAt, p.UpdatedAt, map[string]string{
			"status":      p.Status,
			"location":    p.Location,
			"client":      p.ClientName,
			"notes":       count(len(p.Notes)),
			"attachments": count(len(p.Attachments)),
			"remarks":     count(len(p.Remarks)),
		}),
	}
}

// Note renders a free-form project note.
func Note(projectName string, n domain.Note) Result {
	content := fmt.Sprintf("Note on project %q by %s (%s): %s",
		orPlaceholder(projectName), orPlaceholder(n.Author), date(n.CreatedAt), n.Text)

	return Result{
		Content: content,
		Metadata: meta(domain.TypeNote, n.ID, noteName(n), n.CreatedAt, n.UpdatedAt, map[string]string{
			"project_id": n.ProjectID,
			"author":     n.Author,
		}),
	}
}

// Attachment renders an attached document's descriptive fields. The file
// contents themselves are not indexed.
func Attachment(projectName string, a domain.Attachment) Result {
	content := fmt.Sprintf("Document %q (%s, %d bytes) is attached to project %q, uploaded by %s on %s.",
		a.FileName, orPlaceholder(a.Kind), a.SizeBytes,
		orPlaceholder(projectName), orPlaceholder(a.UploadedBy), date(a.CreatedAt))

	return Result{
		Content: content,
		Metadata: meta(domain.TypeAttachment, a.ID, a.FileName, a.CreatedAt, a.UpdatedAt, map[string]string{
			"project_id": a.ProjectID,
			"kind":       a.Kind,
		}),
	}
}

// InspectionRemark renders a site inspection finding.
func InspectionRemark(projectName string, r domain.InspectionRemark) Result {
	content := fmt.Sprintf("Inspection remark on project %q by %s, severity %s, status %s: %s",
		orPlaceholder(projectName), orPlaceholder(r.Inspector),
		orPlaceholder(r.Severity), orPlaceholder(r.Status), r.Text)

	return Result{
		Content: content,
		Metadata: meta(domain.TypeRemark, r.ID, remarkName(r), r.CreatedAt, r.UpdatedAt, map[string]string{
			"project_id": r.ProjectID,
			"severity":   r.Severity,
			"status":     r.Status,
		}),
	}
}

func noteName(n domain.Note) string {
	const max = 40
	if len(n.Text) <= max {
		return n.Text
	}
	return n.Text[:max] + "..."
}

func remarkName(r domain.InspectionRemark) string {
	const max = 40
	if len(r.Text) <= max {
		return r.Text
	}
	return r.Text[:max] + "..."
}
