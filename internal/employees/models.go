package employees

import (
	"time"

	"bakery-platform/internal/status"
)

// Table is the logical collection name used in audit records.
const Table = "employees"

type Employee struct {
	ID            string        `json:"id" db:"id"`
	EmployeeCode  string        `json:"employee_code" db:"employee_code"`
	Name          string        `json:"name" db:"name"`
	Mobile        string        `json:"mobile" db:"mobile"`
	DesignationID string        `json:"designation_id" db:"designation_id"`
	BranchID      string        `json:"branch_id" db:"branch_id"`
	Status        status.Status `json:"status" db:"status"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

type CreateRequest struct {
	EmployeeCode  string `json:"employee_code"`
	Name          string `json:"name"`
	Mobile        string `json:"mobile"`
	DesignationID string `json:"designation_id"`
	BranchID      string `json:"branch_id"`
}

// UpdateRequest carries optional fields; nil means "leave unchanged".
type UpdateRequest struct {
	Name          *string `json:"name,omitempty"`
	Mobile        *string `json:"mobile,omitempty"`
	DesignationID *string `json:"designation_id,omitempty"`
	BranchID      *string `json:"branch_id,omitempty"`
}

type ListFilter struct {
	BranchID string
	Status   *status.Status
	Search   string
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

// ImportResult summarizes one bulk import pass.
type ImportResult struct {
	Imported    int      `json:"imported"`
	ImportedIDs []string `json:"imported_ids"`
	Errors      []RowError
}

type RowError struct {
	Row    int               `json:"row"`
	Errors map[string]string `json:"errors"`
}
