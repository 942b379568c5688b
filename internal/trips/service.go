package trips

import (
	"context"
	"errors"
	"time"

	"bakery-platform/internal/audit"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("trips: not found")
	ErrInvalidArgument = errors.New("trips: invalid argument")
)

type Repository interface {
	Create(ctx context.Context, t Trip, items []StockItem, rec *audit.Record) error
	GetDetails(ctx context.Context, tripID string) (TripDetails, error)
	ItemTotalsByDate(ctx context.Context, branchID string, date time.Time) ([]ItemTotal, error)
}

// ItemNameLookup resolves item ids so a trip load can be validated and its
// aggregates labelled by name.
type ItemNameLookup interface {
	NameByID(ctx context.Context, id string) (string, bool, error)
}

type Service struct {
	repo     Repository
	recorder *audit.Recorder
	items    ItemNameLookup
	clock    func() time.Time
}

func NewService(repo Repository, recorder *audit.Recorder, items ItemNameLookup) *Service {
	return &Service{repo: repo, recorder: recorder, items: items, clock: time.Now}
}

// AddStock creates a trip with its load in one go. The trip and all its
// stock lines commit together with a single create audit record.
func (s *Service) AddStock(ctx context.Context, req AddStockRequest) (Trip, error) {
	if req.BranchID == "" || req.EmployeeID == "" || len(req.Items) == 0 {
		return Trip{}, ErrInvalidArgument
	}
	for _, line := range req.Items {
		if line.ItemID == "" || line.Quantity <= 0 {
			return Trip{}, ErrInvalidArgument
		}
		if _, ok, err := s.items.NameByID(ctx, line.ItemID); err != nil {
			return Trip{}, err
		} else if !ok {
			return Trip{}, ErrInvalidArgument
		}
	}

	now := s.clock().UTC()
	t := Trip{
		ID:         uuid.NewString(),
		BranchID:   req.BranchID,
		EmployeeID: req.EmployeeID,
		Date:       now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	items := make([]StockItem, 0, len(req.Items))
	for _, line := range req.Items {
		items = append(items, StockItem{
			ID:       uuid.NewString(),
			TripID:   t.ID,
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
	}

	rec := recordPtr(s.recorder.Creation(ctx, Table, t.ID))
	if err := s.repo.Create(ctx, t, items, rec); err != nil {
		return Trip{}, err
	}
	return t, nil
}

func (s *Service) GetTripDetails(ctx context.Context, tripID string) (TripDetails, error) {
	return s.repo.GetDetails(ctx, tripID)
}

// ItemsByDate aggregates stock quantities per item for a branch and calendar
// date.
func (s *Service) ItemsByDate(ctx context.Context, branchID string, date time.Time) ([]ItemTotal, error) {
	if branchID == "" || date.IsZero() {
		return nil, ErrInvalidArgument
	}
	return s.repo.ItemTotalsByDate(ctx, branchID, date)
}

func recordPtr(rec audit.Record, ok bool) *audit.Record {
	if !ok {
		return nil
	}
	return &rec
}
