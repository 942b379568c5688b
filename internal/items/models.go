package items

import (
	"time"

	"bakery-platform/internal/status"
)

// Table is the logical collection name used in audit records.
const Table = "items"

type Item struct {
	ID          string        `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Category    string        `json:"category" db:"category"`
	Description string        `json:"description,omitempty" db:"description"`
	Status      status.Status `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

type CreateRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

type UpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
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

type ImportResult struct {
	Imported    int      `json:"imported"`
	ImportedIDs []string `json:"imported_ids"`
	Errors      []RowError
}

type RowError struct {
	Row    int               `json:"row"`
	Errors map[string]string `json:"errors"`
}
