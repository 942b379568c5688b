package branches

import (
	"time"

	"bakery-platform/internal/status"
)

type Branch struct {
	ID        string        `json:"id" db:"id"`
	Code      string        `json:"code" db:"code"`
	Name      string        `json:"name" db:"name"`
	Address   string        `json:"address,omitempty" db:"address"`
	Phone     string        `json:"phone,omitempty" db:"phone"`
	Mobile    string        `json:"mobile,omitempty" db:"mobile"`
	Email     string        `json:"email,omitempty" db:"email"`
	Status    status.Status `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// Option is the id+name shape returned by the minimal active list,
// used to populate dropdowns.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Mobile  string `json:"mobile,omitempty"`
	Email   string `json:"email,omitempty"`
}

type UpdateRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Mobile  *string `json:"mobile,omitempty"`
	Email   *string `json:"email,omitempty"`
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
