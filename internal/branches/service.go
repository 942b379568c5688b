package branches

import (
	"context"
	"errors"
	"time"

	"bakery-platform/internal/status"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("branches: not found")
	ErrDuplicateCode   = errors.New("branches: code already exists")
	ErrInvalidArgument = errors.New("branches: invalid argument")
)

type Repository interface {
	Create(ctx context.Context, b Branch) error
	Update(ctx context.Context, b Branch) error
	GetByID(ctx context.Context, id string) (Branch, error)
	GetByCode(ctx context.Context, code string) (Branch, error)
	List(ctx context.Context, f ListFilter) ([]Branch, int, error)
	ActiveOptions(ctx context.Context) ([]Option, error)
}

// Branches are organisational scaffolding rather than operational records,
// so mutations here carry no audit trail.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Branch, error) {
	if req.Code == "" || req.Name == "" {
		return Branch{}, ErrInvalidArgument
	}
	if _, err := s.repo.GetByCode(ctx, req.Code); err == nil {
		return Branch{}, ErrDuplicateCode
	} else if !errors.Is(err, ErrNotFound) {
		return Branch{}, err
	}

	now := s.clock().UTC()
	b := Branch{
		ID:        uuid.NewString(),
		Code:      req.Code,
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		Mobile:    req.Mobile,
		Email:     req.Email,
		Status:    status.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return Branch{}, err
	}
	return b, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Branch, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Branch{}, err
	}

	changed := false
	apply := func(dst *string, src *string) {
		if src != nil && *src != *dst {
			*dst = *src
			changed = true
		}
	}
	apply(&b.Name, req.Name)
	apply(&b.Address, req.Address)
	apply(&b.Phone, req.Phone)
	apply(&b.Mobile, req.Mobile)
	apply(&b.Email, req.Email)
	if !changed {
		return b, nil
	}

	b.UpdatedAt = s.clock().UTC()
	if err := s.repo.Update(ctx, b); err != nil {
		return Branch{}, err
	}
	return b, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, newStatus status.Status) (Branch, error) {
	if !newStatus.Valid() {
		return Branch{}, ErrInvalidArgument
	}
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Branch{}, err
	}
	if b.Status == newStatus {
		return b, nil
	}
	b.Status = newStatus
	b.UpdatedAt = s.clock().UTC()
	if err := s.repo.Update(ctx, b); err != nil {
		return Branch{}, err
	}
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Branch, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Branch, int, error) {
	return s.repo.List(ctx, f.withDefaults())
}

// ActiveOptions returns id and name of active branches for selection lists.
func (s *Service) ActiveOptions(ctx context.Context) ([]Option, error) {
	return s.repo.ActiveOptions(ctx)
}

// IDByCode resolves a branch code to its id. It satisfies the lookup
// contract the employee import uses to map branch codes from rows.
func (s *Service) IDByCode(ctx context.Context, code string) (string, bool, error) {
	b, err := s.repo.GetByCode(ctx, code)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return b.ID, true, nil
}
