package indexer

import (
	"context"
	"time"

	"github.com/sitedock/assist/internal/domain"
)

// DataSource lists business entities from the host application's database.
// A zero since returns everything; a non-zero since bounds the listing to
// entities updated after that instant. Projects must additionally include
// families whose nested notes, attachments, or inspection remarks changed
// after since, even when the project row itself did not.
type DataSource interface {
	Projects(ctx context.Context, since time.Time) ([]domain.Project, error)
	Materials(ctx context.Context, since time.Time) ([]domain.Material, error)
	Racks(ctx context.Context, since time.Time) ([]domain.Rack, error)
	Machines(ctx context.Context, since time.Time) ([]domain.Machine, error)
	Clients(ctx context.Context, since time.Time) ([]domain.Client, error)
	Subcontractors(ctx context.Context, since time.Time) ([]domain.Subcontractor, error)
	Orders(ctx context.Context, since time.Time) ([]domain.Order, error)
	ProgressStates(ctx context.Context, since time.Time) ([]domain.ProgressState, error)
	Expenses(ctx context.Context, since time.Time) ([]domain.Expense, error)
	Tasks(ctx context.Context, since time.Time) ([]domain.Task, error)
}

// VectorStore is the write-side contract the pipeline needs.
type VectorStore interface {
	AddDocument(ctx context.Context, c domain.Chunk) error
	RemoveDocument(ctx context.Context, id string) error
	ClearStore(ctx context.Context) error
}
