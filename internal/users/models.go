package users

import (
	"time"

	"bakery-platform/internal/status"
)

// Table is the logical collection name used in audit records.
const Table = "users"

type User struct {
	ID           string        `json:"id" db:"id"`
	Username     string        `json:"username" db:"username"`
	Name         string        `json:"name" db:"name"`
	Mobile       string        `json:"mobile,omitempty" db:"mobile"`
	Email        string        `json:"email,omitempty" db:"email"`
	Role         string        `json:"role" db:"role"`
	BranchID     string        `json:"branch_id,omitempty" db:"branch_id"`
	Status       status.Status `json:"status" db:"status"`
	PasswordHash string        `json:"-" db:"password"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// Profile is the user shape returned to API callers, without credentials.
type Profile struct {
	ID       string        `json:"id"`
	Username string        `json:"username"`
	Name     string        `json:"name"`
	Mobile   string        `json:"mobile,omitempty"`
	Email    string        `json:"email,omitempty"`
	Role     string        `json:"role"`
	BranchID string        `json:"branch_id,omitempty"`
	Status   status.Status `json:"status"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Mobile:   u.Mobile,
		Email:    u.Email,
		Role:     u.Role,
		BranchID: u.BranchID,
		Status:   u.Status,
	}
}

type CreateRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Mobile   string `json:"mobile,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	BranchID string `json:"branch_id,omitempty"`
	Password string `json:"password"`
}
