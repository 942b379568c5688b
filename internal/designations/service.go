package designations

import (
	"context"
	"errors"
	"time"

	"bakery-platform/internal/audit"
	"bakery-platform/internal/status"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("designations: not found")
	ErrDuplicateName   = errors.New("designations: name already exists")
	ErrInvalidArgument = errors.New("designations: invalid argument")
)

type Repository interface {
	Create(ctx context.Context, d Designation, rec *audit.Record) error
	Update(ctx context.Context, d Designation, rec *audit.Record) error
	GetByID(ctx context.Context, id string) (Designation, error)
	GetByName(ctx context.Context, name string) (Designation, error)
	List(ctx context.Context, f ListFilter) ([]Designation, int, error)
	ActiveOptions(ctx context.Context) ([]Option, error)
}

type Service struct {
	repo     Repository
	recorder *audit.Recorder
	clock    func() time.Time
}

func NewService(repo Repository, recorder *audit.Recorder) *Service {
	return &Service{repo: repo, recorder: recorder, clock: time.Now}
}

func (s *Service) Create(ctx context.Context, name string) (Designation, error) {
	if name == "" {
		return Designation{}, ErrInvalidArgument
	}
	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return Designation{}, ErrDuplicateName
	} else if !errors.Is(err, ErrNotFound) {
		return Designation{}, err
	}

	now := s.clock().UTC()
	d := Designation{
		ID:        uuid.NewString(),
		Name:      name,
		Status:    status.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	rec := recordPtr(s.recorder.Creation(ctx, Table, d.ID))
	if err := s.repo.Create(ctx, d, rec); err != nil {
		return Designation{}, err
	}
	return d, nil
}

func (s *Service) Rename(ctx context.Context, id, name string) (Designation, error) {
	if name == "" {
		return Designation{}, ErrInvalidArgument
	}
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Designation{}, err
	}
	if d.Name == name {
		return d, nil
	}

	changes := audit.ChangeSet{{Field: "designation", Old: d.Name, New: name}}
	d.Name = name
	d.UpdatedAt = s.clock().UTC()

	rec := recordPtr(s.recorder.Update(ctx, Table, d.ID, changes))
	if err := s.repo.Update(ctx, d, rec); err != nil {
		return Designation{}, err
	}
	return d, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, newStatus status.Status) (Designation, error) {
	if !newStatus.Valid() {
		return Designation{}, ErrInvalidArgument
	}
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Designation{}, err
	}
	if d.Status == newStatus {
		return d, nil
	}

	changes := audit.ChangeSet{{Field: "status", Old: d.Status, New: newStatus}}
	d.Status = newStatus
	d.UpdatedAt = s.clock().UTC()

	rec := recordPtr(s.recorder.Update(ctx, Table, d.ID, changes))
	if err := s.repo.Update(ctx, d, rec); err != nil {
		return Designation{}, err
	}
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Designation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Designation, int, error) {
	return s.repo.List(ctx, f.withDefaults())
}

func (s *Service) ActiveOptions(ctx context.Context) ([]Option, error) {
	return s.repo.ActiveOptions(ctx)
}

// IDByName resolves a designation name to its id. It satisfies the lookup
// contract the employee import uses to map designation names from rows.
func (s *Service) IDByName(ctx context.Context, name string) (string, bool, error) {
	d, err := s.repo.GetByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return d.ID, true, nil
}

func recordPtr(rec audit.Record, ok bool) *audit.Record {
	if !ok {
		return nil
	}
	return &rec
}
