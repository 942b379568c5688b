package orders

import (
	"context"
	"errors"
	"time"

	"bakery-platform/internal/audit"
	"bakery-platform/internal/notify"
	"bakery-platform/internal/status"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("orders: not found")
	ErrInvalidArgument = errors.New("orders: invalid argument")
	ErrWrongBranch     = errors.New("orders: order belongs to another branch")
)

type Repository interface {
	Create(ctx context.Context, o Order, rec *audit.Record) error
	Update(ctx context.Context, o Order, rec *audit.Record) error
	GetByID(ctx context.Context, id string) (Order, error)
	List(ctx context.Context, f ListFilter) ([]Order, int, error)
}

type Service struct {
	repo     Repository
	recorder *audit.Recorder
	notifier *notify.Notifier
	clock    func() time.Time
}

func NewService(repo Repository, recorder *audit.Recorder, notifier *notify.Notifier) *Service {
	return &Service{repo: repo, recorder: recorder, notifier: notifier, clock: time.Now}
}

// Create places a new order in the pending state. The payment status comes
// from the caller since an order can be taken with no payment, an advance or
// the full amount.
func (s *Service) Create(ctx context.Context, createdBy string, req CreateRequest) (Order, error) {
	if req.Title == "" || req.BranchID == "" || createdBy == "" {
		return Order{}, ErrInvalidArgument
	}
	if req.DeliveryDate.IsZero() || req.TotalAmount < 0 || req.AdvanceAmount < 0 {
		return Order{}, ErrInvalidArgument
	}
	if !req.PaymentStatus.Valid() {
		return Order{}, ErrInvalidArgument
	}

	now := s.clock().UTC()
	o := Order{
		ID:            uuid.NewString(),
		BranchID:      req.BranchID,
		EmployeeID:    req.EmployeeID,
		Title:         req.Title,
		Description:   req.Description,
		Remarks:       req.Remarks,
		DeliveryDate:  req.DeliveryDate,
		TotalAmount:   req.TotalAmount,
		AdvanceAmount: req.AdvanceAmount,
		PaymentStatus: req.PaymentStatus,
		Status:        status.OrderPending,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	rec := recordPtr(s.recorder.Creation(ctx, Table, o.ID))
	if err := s.repo.Create(ctx, o, rec); err != nil {
		return Order{}, err
	}
	return o, nil
}

// UpdateStatus moves an order to newStatus and settles the payment status
// through the transition policy: delivering an order collects the balance,
// cancelling one refunds whatever was paid. The order and its audit record
// commit together; an event goes out after the commit.
func (s *Service) UpdateStatus(ctx context.Context, id string, newStatus status.OrderStatus) (Order, error) {
	if !newStatus.Valid() {
		return Order{}, ErrInvalidArgument
	}
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if o.Status == newStatus {
		return o, nil
	}

	changes := audit.ChangeSet{{Field: "status", Old: o.Status, New: newStatus}}
	newPayment := status.OrderPaymentOnTransition(newStatus, o.PaymentStatus)
	if newPayment != o.PaymentStatus {
		changes = append(changes, audit.Change{Field: "payment_status", Old: o.PaymentStatus, New: newPayment})
	}

	o.Status = newStatus
	o.PaymentStatus = newPayment
	o.UpdatedAt = s.clock().UTC()

	rec := recordPtr(s.recorder.Update(ctx, Table, o.ID, changes))
	if err := s.repo.Update(ctx, o, rec); err != nil {
		return Order{}, err
	}

	switch newStatus {
	case status.OrderDelivered:
		if err := s.notifier.OrderDelivered(ctx, o.ID, o.BranchID); err != nil {
			return o, err
		}
	case status.OrderCancelled:
		if err := s.notifier.OrderCancelled(ctx, o.ID, o.BranchID); err != nil {
			return o, err
		}
	}
	return o, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Order, error) {
	return s.repo.GetByID(ctx, id)
}

// GetForBranch fetches an order only if it belongs to the given branch.
func (s *Service) GetForBranch(ctx context.Context, branchID, id string) (Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if o.BranchID != branchID {
		return Order{}, ErrWrongBranch
	}
	return o, nil
}

// ListForBranch returns a branch's orders, newest delivery date first.
func (s *Service) ListForBranch(ctx context.Context, branchID string, f ListFilter) ([]Order, int, error) {
	f.BranchID = branchID
	return s.repo.List(ctx, f.withDefaults())
}

// AdminList returns orders across branches, optionally filtered to one.
func (s *Service) AdminList(ctx context.Context, f ListFilter) ([]Order, int, error) {
	return s.repo.List(ctx, f.withDefaults())
}

func recordPtr(rec audit.Record, ok bool) *audit.Record {
	if !ok {
		return nil
	}
	return &rec
}
