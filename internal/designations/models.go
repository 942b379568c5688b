package designations

import (
	"time"

	"bakery-platform/internal/status"
)

// Table is the logical collection name used in audit records.
const Table = "designations"

type Designation struct {
	ID        string        `json:"id" db:"id"`
	Name      string        `json:"designation" db:"designation"`
	Status    status.Status `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

type Option struct {
	ID   string `json:"id"`
	Name string `json:"designation"`
}

type ListFilter struct {
	Status  *status.Status
	Search  string
	Page    int
	PerPage int
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
