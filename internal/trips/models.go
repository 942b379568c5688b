package trips

import "time"

// Table is the logical collection name used in audit records.
const Table = "trips"

// Trip is one stock run from a branch, carried out by an employee.
type Trip struct {
	ID         string    `json:"id" db:"id"`
	BranchID   string    `json:"branch_id" db:"branch_id"`
	EmployeeID string    `json:"employee_id" db:"employee_id"`
	Date       time.Time `json:"date" db:"date"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// StockItem is one line of a trip's load.
type StockItem struct {
	ID       string  `json:"id" db:"id"`
	TripID   string  `json:"trip_id" db:"trip_id"`
	ItemID   string  `json:"item_id" db:"item_id"`
	Quantity float64 `json:"quantity" db:"quantity"`
}

type AddStockRequest struct {
	BranchID   string         `json:"branch_id"`
	EmployeeID string         `json:"employee_id"`
	Items      []StockRequest `json:"items"`
}

type StockRequest struct {
	ItemID   string  `json:"item_id"`
	Quantity float64 `json:"quantity"`
}

// TripDetails is a trip with its load.
type TripDetails struct {
	Trip  Trip        `json:"trip"`
	Items []StockItem `json:"items"`
}

// ItemTotal is the per-item aggregate of stock sent to a branch on a date.
type ItemTotal struct {
	ItemName      string  `json:"item_name"`
	TotalQuantity float64 `json:"total_quantity"`
}
