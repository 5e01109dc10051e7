package source

import (
	"time"

	"github.com/sitedock/assist/internal/domain"
)

// YAML records of the snapshot file. Kept separate from domain entities so
// the export format can evolve without touching the domain.

type projectDoc struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Status      string    `yaml:"status"`
	Location    string    `yaml:"location"`
	ClientName  string    `yaml:"client_name"`
	Description string    `yaml:"description"`
	Budget      float64   `yaml:"budget"`
	StartDate   time.Time `yaml:"start_date"`
	EndDate     time.Time `yaml:"end_date"`
	CreatedAt   time.Time `yaml:"created_at"`
	UpdatedAt   time.Time `yaml:"updated_at"`

	Notes       []noteDoc       `yaml:"notes"`
	Attachments []attachmentDoc `yaml:"attachments"`
	Remarks     []remarkDoc     `yaml:"remarks"`
}

func (d projectDoc) toDomain() domain.Project {
	p := domain.Project{
		ID:          d.ID,
		Name:        d.Name,
		Status:      d.Status,
		Location:    d.Location,
		ClientName:  d.ClientName,
		Description: d.Description,
		Budget:      d.Budget,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	for _, n := range d.Notes {
		p.Notes = append(p.Notes, n.toDomain(d.ID))
	}
	for _, a := range d.Attachments {
		p.Attachments = append(p.Attachments, a.toDomain(d.ID))
	}
	for _, r := range d.Remarks {
		p.Remarks = append(p.Remarks, r.toDomain(d.ID))
	}
	return p
}

type noteDoc struct {
	ID        string    `yaml:"id"`
	Author    string    `yaml:"author"`
	Text      string    `yaml:"text"`
	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

func (d noteDoc) toDomain(projectID string) domain.Note {
	return domain.Note{
		ID:        d.ID,
		ProjectID: projectID,
		Author:    d.Author,
		Text:      d.Text,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type attachmentDoc struct {
	ID         string    `yaml:"id"`
	FileName   string    `yaml:"file_name"`
	Kind       string    `yaml:"kind"`
	UploadedBy string    `yaml:"uploaded_by"`
	SizeBytes  int64     `yaml:"size_bytes"`
	CreatedAt  time.Time `yaml:"created_at"`
	UpdatedAt  time.Time `yaml:"updated_at"`
}

func (d attachmentDoc) toDomain(projectID string) domain.Attachment {
	return domain.Attachment{
		ID:         d.ID,
		ProjectID:  projectID,
		FileName:   d.FileName,
		Kind:       d.Kind,
		UploadedBy: d.UploadedBy,
		SizeBytes:  d.SizeBytes,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type remarkDoc struct {
	ID        string    `yaml:"id"`
	Inspector string    `yaml:"inspector"`
	Severity  string    `yaml:"severity"`
	Status    string    `yaml:"status"`
	Text      string    `yaml:"text"`
	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

func (d remarkDoc) toDomain(projectID string) domain.InspectionRemark {
	return domain.InspectionRemark{
		ID:        d.ID,
		ProjectID: projectID,
		Inspector: d.Inspector,
		Severity:  d.Severity,
		Status:    d.Status,
		Text:      d.Text,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type materialDoc struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	Unit      string    `yaml:"unit"`
	Quantity  float64   `yaml:"quantity"`
	MinStock  float64   `yaml:"min_stock"`
	Location  string    `yaml:"location"`
	Supplier  string    `yaml:"supplier"`
	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

func (d materialDoc) toDomain() domain.Material {
	return domain.Material{
		ID:        d.ID,
		Name:      d.Name,
		Unit:      d.Unit,
		Quantity:  d.Quantity,
		MinStock:  d.MinStock,
		Location:  d.Location,
		Supplier:  d.Supplier,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (d materialDoc) stamps() (time.Time, time.Time) { return d.CreatedAt, d.UpdatedAt }

type rackDoc struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	Location  string    `yaml:"location"`
	Capacity  int       `yaml:"capacity"`
	Occupied  int       `yaml:"occupied"`
	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

func (d rackDoc) toDomain() domain.Rack {
	return domain.Rack{
		ID:        d.ID,
		Name:      d.Name,
		Location:  d.Location,
		Capacity:  d.Capacity,
		Occupied:  d.Occupied,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (d rackDoc) stamps() (time.Time, time.Time) { return d.CreatedAt, d.UpdatedAt }

type machineDoc struct {
	ID            string    `yaml:"id"`
	Name          string    `yaml:"name"`
	Model         string    `yaml:"model"`
	SerialNumber  string    `yaml:"serial_number"`
	Status        string    `yaml:"status"`
	Location      string    `yaml:"location"`
	NextServiceAt time.Time `yaml:"next_service_at"`
	CreatedAt     time.Time `yaml:"created_at"`
	UpdatedAt     time.Time `yaml:"updated_at"`
}

func (d machineDoc) toDomain() domain.Machine {
	return domain.Machine{
		ID:            d.ID,
		Name:          d.Name,
		Model:         d.Model,
		SerialNumber:  d.SerialNumber,
		Status:        d.Status,
		Location:      d.Location,
		NextServiceAt: d.NextServiceAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (d machineDoc) stamps() (time.Time, time.Time) { return d.CreatedAt, d.UpdatedAt }

type clientDoc struct {
	ID            string    `yaml:"id"`
	Name          string    `yaml:"name"`
	ContactPerson string    `yaml:"contact_person"`
	Email         string    `yaml:"email"`
	Phone         string    `yaml:"phone"`
	Address       string    `yaml:"address"`
	CreatedAt     time.Time `yaml:"created_at"`
	UpdatedAt     time.Time `yaml:"updated_at"`
}

func (d clientDoc) toDomain() domain.Client {
	return domain.Client{
		ID:            d.ID,
		Name:          d.Name,
		ContactPerson: d.ContactPerson,
		Email:         d.Email,
		Phone:         d.Phone,
		Address:       d.Address,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (d clientDoc) stamps() (time.Time, time.Time) { return d.CreatedAt, d.UpdatedAt }

type subcontractorDoc struct {
	ID            string    `yaml:"id"`
	Name          string    `yaml:"name"`
	Trade         string    `yaml:"trade"`
	ContactPerson string    `yaml:"contact_person"`
	Email         string    `yaml:"email"`
	Phone         string    `yaml:"phone"`
	HourlyRate    float64   `yaml:"hourly_rate"`
	CreatedAt     time.Time `yaml:"created_at"`
	UpdatedAt     time.Time `yaml:"updated_at"`
}

func (d subcontractorDoc) toDomain() domain.Subcontractor {
	return domain.Subcontractor{
		ID:            d.ID,
		Name:          d.Name,
		Trade:         d.Trade,
		ContactPerson: d.ContactPerson,
		Email:         d.Email,
		Phone:         d.Phone,
		HourlyRate:    d.HourlyRate,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (d subcontractorDoc) stamps() (time.Time, time.Time) { return d.CreatedAt, d.UpdatedAt }

type orderDoc struct {
	ID          string    `yaml:"id"`
	Number      string    `yaml:"number"`
	ProjectID   string    `yaml:"project_id"`
	ProjectName string    `yaml:"project_name"`
	Supplier    string    `yaml:"supplier"`
	Status      string    `yaml:"status"`
	Total       float64   `yaml:"total"`
	ItemCount   int       `yaml:"item_count"`
	OrderedAt   time.Time `yaml:"ordered_at"`
	CreatedAt   time.Time `yaml:"created_at"`
	UpdatedAt   time.Time `yaml:"updated_at"`
}

func (d orderDoc) toDomain() domain.Order {
	return domain.Order{
		ID:          d.ID,
		Number:      d.Number,
		ProjectID:   d.ProjectID,
		ProjectName: d.ProjectName,
		Supplier:    d.Supplier,
		Status:      d.Status,
		Total:       d.Total,
		ItemCount:   d.ItemCount,
		OrderedAt:   d.OrderedAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (d orderDoc) stamps() (time.Time, time.Time) { return d.CreatedAt, d.UpdatedAt }

type progressDoc struct {
	ID          string    `yaml:"id"`
	ProjectID   string    `yaml:"project_id"`
	ProjectName string    `yaml:"project_name"`
	Phase       string    `yaml:"phase"`
	Status      string    `yaml:"status"`
	Percent     int       `yaml:"percent"`
	Comment     string    `yaml:"comment"`
	CreatedAt   time.Time `yaml:"created_at"`
	UpdatedAt   time.Time `yaml:"updated_at"`
}

func (d progressDoc) toDomain() domain.ProgressState {
	return domain.ProgressState{
		ID:          d.ID,
		ProjectID:   d.ProjectID,
		ProjectName: d.ProjectName,
		Phase:       d.Phase,
		Status:      d.Status,
		Percent:     d.Percent,
		Comment:     d.Comment,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (d progressDoc) stamps() (time.Time, time.Time) { return d.CreatedAt, d.UpdatedAt }

type expenseDoc struct {
	ID          string    `yaml:"id"`
	ProjectID   string    `yaml:"project_id"`
	ProjectName string    `yaml:"project_name"`
	Category    string    `yaml:"category"`
	Description string    `yaml:"description"`
	Amount      float64   `yaml:"amount"`
	IncurredAt  time.Time `yaml:"incurred_at"`
	CreatedAt   time.Time `yaml:"created_at"`
	UpdatedAt   time.Time `yaml:"updated_at"`
}

func (d expenseDoc) toDomain() domain.Expense {
	return domain.Expense{
		ID:          d.ID,
		ProjectID:   d.ProjectID,
		ProjectName: d.ProjectName,
		Category:    d.Category,
		Description: d.Description,
		Amount:      d.Amount,
		IncurredAt:  d.IncurredAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (d expenseDoc) stamps() (time.Time, time.Time) { return d.CreatedAt, d.UpdatedAt }

type taskDoc struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	ProjectID   string    `yaml:"project_id"`
	ProjectName string    `yaml:"project_name"`
	AssignedTo  string    `yaml:"assigned_to"`
	Status      string    `yaml:"status"`
	Priority    string    `yaml:"priority"`
	Description string    `yaml:"description"`
	DueDate     time.Time `yaml:"due_date"`
	CreatedAt   time.Time `yaml:"created_at"`
	UpdatedAt   time.Time `yaml:"updated_at"`
}

func (d taskDoc) toDomain() domain.Task {
	return domain.Task{
		ID:          d.ID,
		Title:       d.Title,
		ProjectID:   d.ProjectID,
		ProjectName: d.ProjectName,
		AssignedTo:  d.AssignedTo,
		Status:      d.Status,
		Priority:    d.Priority,
		Description: d.Description,
		DueDate:     d.DueDate,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (d taskDoc) stamps() (time.Time, time.Time) { return d.CreatedAt, d.UpdatedAt }
