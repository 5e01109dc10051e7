// Package source provides the business data source backing the indexing
// pipeline. Entities are read from a YAML snapshot file exported by the host
// application.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sitedock/assist/internal/domain"
)

// Source reads business entities from a YAML file. The file is re-parsed
// when its modification time changes, so the host application can swap in a
// fresh export without a restart.
type Source struct {
	path   string
	logger *zap.Logger

	mu      sync.Mutex
	cached  *file
	modTime time.Time
}

// New creates a file-backed source. The file is not read until first use.
func New(path string, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{path: path, logger: logger}
}

// file is the YAML snapshot layout.
type file struct {
	Projects       []projectDoc       `yaml:"projects"`
	Materials      []materialDoc      `yaml:"materials"`
	Racks          []rackDoc          `yaml:"racks"`
	Machines       []machineDoc       `yaml:"machines"`
	Clients        []clientDoc        `yaml:"clients"`
	Subcontractors []subcontractorDoc `yaml:"subcontractors"`
	Orders         []orderDoc         `yaml:"orders"`
	ProgressStates []progressDoc      `yaml:"progress_states"`
	Expenses       []expenseDoc       `yaml:"expenses"`
	Tasks          []taskDoc          `yaml:"tasks"`
}

func (s *Source) load() (*file, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("stat source file: %w", err)
	}
	if s.cached != nil && info.ModTime().Equal(s.modTime) {
		return s.cached, nil
	}

	data, err := os.ReadFile(filepath.Clean(s.path))
	if err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse source file: %w", err)
	}

	s.cached = &f
	s.modTime = info.ModTime()
	s.logger.Info("source snapshot loaded",
		zap.String("path", s.path),
		zap.Time("mod_time", s.modTime),
	)
	return &f, nil
}

// eligible reports whether an entity updated at u (created at c) falls into
// the trailing window starting at since. A zero since selects everything.
func eligible(since, c, u time.Time) bool {
	if since.IsZero() {
		return true
	}
	last := u
	if last.IsZero() {
		last = c
	}
	return !last.Before(since)
}

// Projects returns project families eligible at since. A family qualifies
// when the project itself or any of its notes, attachments, or inspection
// remarks changed within the window.
func (s *Source) Projects(_ context.Context, since time.Time) ([]domain.Project, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}

	var out []domain.Project
	for _, d := range f.Projects {
		p := d.toDomain()
		if familyEligible(since, p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func familyEligible(since time.Time, p domain.Project) bool {
	if eligible(since, p.CreatedAt, p.UpdatedAt) {
		return true
	}
	for _, n := range p.Notes {
		if eligible(since, n.CreatedAt, n.UpdatedAt) {
			return true
		}
	}
	for _, a := range p.Attachments {
		if eligible(since, a.CreatedAt, a.UpdatedAt) {
			return true
		}
	}
	for _, r := range p.Remarks {
		if eligible(since, r.CreatedAt, r.UpdatedAt) {
			return true
		}
	}
	return false
}

// Materials returns materials eligible at since.
func (s *Source) Materials(_ context.Context, since time.Time) ([]domain.Material, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	return collect[domain.Material](f.Materials, since), nil
}

// Racks returns racks eligible at since.
func (s *Source) Racks(_ context.Context, since time.Time) ([]domain.Rack, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	return collect[domain.Rack](f.Racks, since), nil
}

// Machines returns machines eligible at since.
func (s *Source) Machines(_ context.Context, since time.Time) ([]domain.Machine, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	return collect[domain.Machine](f.Machines, since), nil
}

// Clients returns clients eligible at since.
func (s *Source) Clients(_ context.Context, since time.Time) ([]domain.Client, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	return collect[domain.Client](f.Clients, since), nil
}

// Subcontractors returns subcontractors eligible at since.
func (s *Source) Subcontractors(_ context.Context, since time.Time) ([]domain.Subcontractor, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	return collect[domain.Subcontractor](f.Subcontractors, since), nil
}

// Orders returns orders eligible at since.
func (s *Source) Orders(_ context.Context, since time.Time) ([]domain.Order, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	return collect[domain.Order](f.Orders, since), nil
}

// ProgressStates returns progress states eligible at since.
func (s *Source) ProgressStates(_ context.Context, since time.Time) ([]domain.ProgressState, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	return collect[domain.ProgressState](f.ProgressStates, since), nil
}

// Expenses returns expenses eligible at since.
func (s *Source) Expenses(_ context.Context, since time.Time) ([]domain.Expense, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	return collect[domain.Expense](f.Expenses, since), nil
}

// Tasks returns tasks eligible at since.
func (s *Source) Tasks(_ context.Context, since time.Time) ([]domain.Task, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	return collect[domain.Task](f.Tasks, since), nil
}

// doc is implemented by all YAML entity records.
type doc[E any] interface {
	toDomain() E
	stamps() (created, updated time.Time)
}

func collect[E any, D doc[E]](docs []D, since time.Time) []E {
	var out []E
	for _, d := range docs {
		c, u := d.stamps()
		if eligible(since, c, u) {
			out = append(out, d.toDomain())
		}
	}
	return out
}
