package format

import (
	"strings"
	"testing"
	"time"

	"github.com/sitedock/assist/internal/domain"
)

func TestProject_Deterministic(t *testing.T) {
	p := domain.Project{
		ID:         "p1",
		Name:       "Office renovation",
		Status:     "active",
		Location:   "Berlin",
		ClientName: "Acme GmbH",
		Budget:     150000,
		StartDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Notes:      []domain.Note{{ID: "n1"}},
	}

	a := Project(p)
	b := Project(p)
	if a.Content != b.Content {
		t.Error("same entity state must render identical content")
	}
	if a.Metadata.Type != domain.TypeProject || a.Metadata.EntityID != "p1" {
		t.Errorf("metadata = %+v", a.Metadata)
	}
	if !strings.Contains(a.Content, `Project "Office renovation" has status active.`) {
		t.Errorf("content missing status sentence:\n%s", a.Content)
	}
	if !strings.Contains(a.Content, "150000.00 EUR") {
		t.Errorf("content missing formatted budget:\n%s", a.Content)
	}
	if !strings.Contains(a.Content, "2026-03-01") {
		t.Errorf("content missing formatted date:\n%s", a.Content)
	}
	if !strings.Contains(a.Content, "1 notes, 0 attached documents and 0 inspection remarks") {
		t.Errorf("content missing family counts:\n%s", a.Content)
	}
}

func TestProject_PlaceholdersForMissingFields(t *testing.T) {
	r := Project(domain.Project{ID: "p1", Name: "Bare"})
	if !strings.Contains(r.Content, Placeholder) {
		t.Errorf("missing fields must render the placeholder:\n%s", r.Content)
	}
	if strings.Contains(r.Content, "0001-01-01") {
		t.Errorf("zero dates must not leak:\n%s", r.Content)
	}
}

func TestMaterial_BelowMinimumStock(t *testing.T) {
	low := Material(domain.Material{ID: "m1", Name: "Cement", Unit: "kg", Quantity: 5, MinStock: 20})
	if !strings.Contains(low.Content, "below the minimum level") {
		t.Errorf("low stock sentence missing:\n%s", low.Content)
	}

	ok := Material(domain.Material{ID: "m2", Name: "Sand", Unit: "kg", Quantity: 50, MinStock: 20})
	if strings.Contains(ok.Content, "below the minimum level") {
		t.Errorf("low stock sentence must not appear:\n%s", ok.Content)
	}
}

func TestMaterial_QuantityFormatting(t *testing.T) {
	r := Material(domain.Material{ID: "m1", Name: "Cement", Unit: "kg", Quantity: 200})
	if !strings.Contains(r.Content, "200 kg in stock") {
		t.Errorf("expected plain quantity rendering:\n%s", r.Content)
	}
}

func TestNote_TruncatedEntityName(t *testing.T) {
	longText := strings.Repeat("a", 60)
	r := Note("Office", domain.Note{ID: "n1", ProjectID: "p1", Author: "kim", Text: longText})

	if len(r.Metadata.EntityName) != 43 { // 40 + "..."
		t.Errorf("entity name length = %d, want 43", len(r.Metadata.EntityName))
	}
	if !strings.HasSuffix(r.Metadata.EntityName, "...") {
		t.Errorf("entity name = %q", r.Metadata.EntityName)
	}
	if !strings.Contains(r.Content, longText) {
		t.Error("content must carry the full note text")
	}
}

func TestInspectionRemark_Fields(t *testing.T) {
	r := InspectionRemark("Office", domain.InspectionRemark{
		ID: "r1", ProjectID: "p1", Inspector: "Meyer", Severity: "high", Status: "open",
		Text: "crack in load-bearing wall",
	})
	if r.Metadata.Type != domain.TypeRemark {
		t.Errorf("type = %v", r.Metadata.Type)
	}
	if !strings.Contains(r.Content, "severity high") || !strings.Contains(r.Content, "crack in load-bearing wall") {
		t.Errorf("content = %q", r.Content)
	}
	if r.Metadata.Extra["project_id"] != "p1" {
		t.Errorf("extra = %v", r.Metadata.Extra)
	}
}

func TestOrder_MoneyFormatting(t *testing.T) {
	r := Order(domain.Order{ID: "o1", Number: "PO-17", Supplier: "BauMarkt", Total: 1234.5})
	if !strings.Contains(r.Content, "1234.50 EUR") {
		t.Errorf("expected two-decimal EUR amount:\n%s", r.Content)
	}
	if r.Metadata.Type != domain.TypeOrder {
		t.Errorf("type = %v", r.Metadata.Type)
	}
}

func TestRack_FreeSlots(t *testing.T) {
	r := Rack(domain.Rack{ID: "r1", Name: "A-3", Location: "Hall 2", Capacity: 10, Occupied: 7})
	if !strings.Contains(r.Content, "7 of 10 slots; 3 free") {
		t.Errorf("content = %q", r.Content)
	}
}
