package users

import (
	"context"
	"errors"
	"time"

	"bakery-platform/internal/audit"
	"bakery-platform/internal/rbac"
	"bakery-platform/internal/status"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound          = errors.New("users: not found")
	ErrDuplicateUsername = errors.New("users: username already exists")
	ErrInvalidArgument   = errors.New("users: invalid argument")
	ErrBadCredentials    = errors.New("users: invalid username or password")
)

type Repository interface {
	Create(ctx context.Context, u User, rec *audit.Record) error
	Update(ctx context.Context, u User, rec *audit.Record) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
}

type Service struct {
	repo     Repository
	recorder *audit.Recorder
	clock    func() time.Time
}

func NewService(repo Repository, recorder *audit.Recorder) *Service {
	return &Service{repo: repo, recorder: recorder, clock: time.Now}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (User, error) {
	if req.Username == "" || req.Name == "" || req.Password == "" {
		return User{}, ErrInvalidArgument
	}
	if !rbac.ValidRole(req.Role) {
		return User{}, ErrInvalidArgument
	}
	if req.Role == rbac.RoleBranch && req.BranchID == "" {
		return User{}, ErrInvalidArgument
	}
	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return User{}, ErrDuplicateUsername
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	now := s.clock().UTC()
	u := User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Name:         req.Name,
		Mobile:       req.Mobile,
		Email:        req.Email,
		Role:         req.Role,
		BranchID:     req.BranchID,
		Status:       status.Active,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	rec := recordPtr(s.recorder.Creation(ctx, Table, u.ID))
	if err := s.repo.Create(ctx, u, rec); err != nil {
		return User{}, err
	}
	return u, nil
}

// Authenticate checks username and password for an active user. Failures are
// reported uniformly so callers cannot distinguish a bad username from a bad
// password.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrBadCredentials
	}
	if err != nil {
		return User{}, err
	}
	if u.Status != status.Active {
		return User{}, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrBadCredentials
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// UpdatePassword replaces the user's password hash and records the change as
// an update on the users table.
func (s *Service) UpdatePassword(ctx context.Context, id, newPassword string) error {
	if newPassword == "" {
		return ErrInvalidArgument
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	changes := audit.ChangeSet{{Field: "password", Old: "", New: ""}}
	u.PasswordHash = string(hash)
	u.UpdatedAt = s.clock().UTC()

	rec := recordPtr(s.recorder.Update(ctx, Table, u.ID, changes))
	return s.repo.Update(ctx, u, rec)
}

func (s *Service) UpdateStatus(ctx context.Context, id string, newStatus status.Status) (User, error) {
	if !newStatus.Valid() {
		return User{}, ErrInvalidArgument
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if u.Status == newStatus {
		return u, nil
	}

	changes := audit.ChangeSet{{Field: "status", Old: u.Status, New: newStatus}}
	u.Status = newStatus
	u.UpdatedAt = s.clock().UTC()

	rec := recordPtr(s.recorder.Update(ctx, Table, u.ID, changes))
	if err := s.repo.Update(ctx, u, rec); err != nil {
		return User{}, err
	}
	return u, nil
}

func recordPtr(rec audit.Record, ok bool) *audit.Record {
	if !ok {
		return nil
	}
	return &rec
}
