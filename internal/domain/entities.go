package domain

import "time"

// Business entities as exposed by the host application's data source.
// The relational schema behind them is out of scope; only the fields needed
// for chunk rendering are carried here.

// Project is a construction/renovation project. Notes, attachments, and
// inspection remarks are dependent sub-entities: a change to any of them
// makes the project family eligible for incremental re-indexing.
type Project struct {
	ID          string
	Name        string
	Status      string
	Location    string
	ClientName  string
	Description string
	Budget      float64
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Notes       []Note
	Attachments []Attachment
	Remarks     []InspectionRemark
}

// Material is a stock item in the warehouse.
type Material struct {
	ID        string
	Name      string
	Unit      string
	Quantity  float64
	MinStock  float64
	Location  string
	Supplier  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Rack is a storage rack in the warehouse.
type Rack struct {
	ID        string
	Name      string
	Location  string
	Capacity  int
	Occupied  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Machine is a piece of equipment.
type Machine struct {
	ID            string
	Name          string
	Model         string
	SerialNumber  string
	Status        string
	Location      string
	NextServiceAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Client is a customer of the business.
type Client struct {
	ID            string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Subcontractor is an external trade partner.
type Subcontractor struct {
	ID            string
	Name          string
	Trade         string
	ContactPerson string
	Email         string
	Phone         string
	HourlyRate    float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Order is a purchase order placed with a supplier.
type Order struct {
	ID          string
	Number      string
	ProjectID   string
	ProjectName string
	Supplier    string
	Status      string
	Total       float64
	ItemCount   int
	OrderedAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProgressState records the completion state of a project phase.
type ProgressState struct {
	ID          string
	ProjectID   string
	ProjectName string
	Phase       string
	Status      string
	Percent     int
	Comment     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Expense is a cost booked against a project.
type Expense struct {
	ID          string
	ProjectID   string
	ProjectName string
	Category    string
	Description string
	Amount      float64
	IncurredAt  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Task is a work item, optionally assigned and scheduled.
type Task struct {
	ID          string
	Title       string
	ProjectID   string
	ProjectName string
	AssignedTo  string
	Status      string
	Priority    string
	Description string
	DueDate     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Note is a free-form note attached to a project.
type Note struct {
	ID        string
	ProjectID string
	Author    string
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Attachment is a document file attached to a project. Only descriptive
// fields are indexed; file contents are out of scope.
type Attachment struct {
	ID         string
	ProjectID  string
	FileName   string
	Kind       string
	UploadedBy string
	SizeBytes  int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InspectionRemark is a finding recorded during a site inspection.
type InspectionRemark struct {
	ID        string
	ProjectID string
	Inspector string
	Severity  string
	Status    string
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
