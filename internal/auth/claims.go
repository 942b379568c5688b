package auth

import "github.com/golang-jwt/jwt/v5"

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims are the only supported JWT claims shape for this service.
// BranchID identifies the branch a branch-scoped user acts for; admins carry
// no branch and see every branch.
type Claims struct {
	jwt.RegisteredClaims

	UserID    string    `json:"user_id"`
	BranchID  string    `json:"branch_id,omitempty"`
	Role      string    `json:"role"`
	TokenType TokenType `json:"token_type"`
}
