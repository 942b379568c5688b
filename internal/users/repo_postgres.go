package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bakery-platform/internal/audit"
	"bakery-platform/pkg/utils"
)

// PostgresRepo persists users; audit records commit in the same transaction.
//
// Assumed table:
//
//	users (
//	  id uuid primary key,
//	  username varchar not null unique,
//	  name varchar not null,
//	  mobile varchar,
//	  email varchar,
//	  role varchar not null,
//	  branch_id uuid references branches(id),
//	  status smallint not null,
//	  password varchar not null,
//	  created_at timestamptz not null,
//	  updated_at timestamptz not null
//	)
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const selectUser = `
SELECT id, username, name, COALESCE(mobile, ''), COALESCE(email, ''),
       role, COALESCE(branch_id::text, ''), status, password, created_at, updated_at
FROM users
`

func (r *PostgresRepo) Create(ctx context.Context, u User, rec *audit.Record) error {
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		const q = `
INSERT INTO users (id, username, name, mobile, email, role, branch_id, status, password, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`
		if _, err := tx.ExecContext(ctx, q,
			u.ID, u.Username, u.Name, nullable(u.Mobile), nullable(u.Email),
			u.Role, nullable(u.BranchID), u.Status, u.PasswordHash, u.CreatedAt, u.UpdatedAt,
		); err != nil {
			return fmt.Errorf("users: insert: %w", err)
		}
		if rec != nil {
			return audit.AppendTx(ctx, tx, *rec)
		}
		return nil
	})
}

func (r *PostgresRepo) Update(ctx context.Context, u User, rec *audit.Record) error {
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		const q = `
UPDATE users
SET name = $2, mobile = $3, email = $4, role = $5, branch_id = $6,
    status = $7, password = $8, updated_at = $9
WHERE id = $1
`
		res, err := tx.ExecContext(ctx, q,
			u.ID, u.Name, nullable(u.Mobile), nullable(u.Email), u.Role,
			nullable(u.BranchID), u.Status, u.PasswordHash, u.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("users: update: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrNotFound
		}
		if rec != nil {
			return audit.AppendTx(ctx, tx, *rec)
		}
		return nil
	})
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (User, error) {
	return r.getOne(ctx, selectUser+"WHERE id = $1", id)
}

func (r *PostgresRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	return r.getOne(ctx, selectUser+"WHERE username = $1", username)
}

func (r *PostgresRepo) getOne(ctx context.Context, q string, arg any) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, q, arg).Scan(
		&u.ID, &u.Username, &u.Name, &u.Mobile, &u.Email,
		&u.Role, &u.BranchID, &u.Status, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("users: get: %w", err)
	}
	return u, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
