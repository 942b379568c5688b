package orders

import (
	"time"

	"bakery-platform/internal/status"
)

// Table is the logical collection name used in audit records.
const Table = "orders"

type Order struct {
	ID            string               `json:"id" db:"id"`
	BranchID      string               `json:"branch_id" db:"branch_id"`
	EmployeeID    string               `json:"employee_id,omitempty" db:"employee_id"`
	Title         string               `json:"title" db:"title"`
	Description   string               `json:"description,omitempty" db:"description"`
	Remarks       string               `json:"remarks,omitempty" db:"remarks"`
	DeliveryDate  time.Time            `json:"delivery_date" db:"delivery_date"`
	TotalAmount   float64              `json:"total_amount" db:"total_amount"`
	AdvanceAmount float64              `json:"advance_amount,omitempty" db:"advance_amount"`
	PaymentStatus status.PaymentStatus `json:"payment_status" db:"payment_status"`
	Status        status.OrderStatus   `json:"status" db:"status"`
	CreatedBy     string               `json:"created_by" db:"created_by"`
	CreatedAt     time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at" db:"updated_at"`
}

type CreateRequest struct {
	BranchID      string               `json:"branch_id,omitempty"`
	EmployeeID    string               `json:"employee_id,omitempty"`
	Title         string               `json:"title"`
	Description   string               `json:"description,omitempty"`
	Remarks       string               `json:"remarks,omitempty"`
	DeliveryDate  time.Time            `json:"delivery_date"`
	TotalAmount   float64              `json:"total_amount"`
	AdvanceAmount float64              `json:"advance_amount,omitempty"`
	PaymentStatus status.PaymentStatus `json:"payment_status"`
}

type ListFilter struct {
	BranchID string
	Status   *status.OrderStatus
	Page     int
	PerPage  int
}

func (f ListFilter) withDefaults() ListFilter {
	out := f
	if out.Page <= 0 {
		out.Page = 1
	}
	if out.PerPage <= 0 {
		out.PerPage = 10
	}
	return out
}
