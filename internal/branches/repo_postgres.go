package branches

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bakery-platform/internal/status"
)

// PostgresRepo persists branches.
//
// Assumed table:
//
//	branches (
//	  id uuid primary key,
//	  code varchar not null unique,
//	  name varchar not null,
//	  address text,
//	  phone varchar,
//	  mobile varchar,
//	  email varchar,
//	  status smallint not null,
//	  created_at timestamptz not null,
//	  updated_at timestamptz not null
//	)
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const selectBranch = `
SELECT id, code, name, COALESCE(address, ''), COALESCE(phone, ''),
       COALESCE(mobile, ''), COALESCE(email, ''), status, created_at, updated_at
FROM branches
`

func (r *PostgresRepo) Create(ctx context.Context, b Branch) error {
	const q = `
INSERT INTO branches (id, code, name, address, phone, mobile, email, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`
	_, err := r.db.ExecContext(ctx, q,
		b.ID, b.Code, b.Name, nullable(b.Address), nullable(b.Phone),
		nullable(b.Mobile), nullable(b.Email), b.Status, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("branches: insert: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Update(ctx context.Context, b Branch) error {
	const q = `
UPDATE branches
SET name = $2, address = $3, phone = $4, mobile = $5, email = $6, status = $7, updated_at = $8
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q,
		b.ID, b.Name, nullable(b.Address), nullable(b.Phone),
		nullable(b.Mobile), nullable(b.Email), b.Status, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("branches: update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Branch, error) {
	return r.getOne(ctx, selectBranch+"WHERE id = $1", id)
}

func (r *PostgresRepo) GetByCode(ctx context.Context, code string) (Branch, error) {
	return r.getOne(ctx, selectBranch+"WHERE code = $1", code)
}

func (r *PostgresRepo) getOne(ctx context.Context, q string, arg any) (Branch, error) {
	var b Branch
	err := r.db.QueryRowContext(ctx, q, arg).Scan(
		&b.ID, &b.Code, &b.Name, &b.Address, &b.Phone,
		&b.Mobile, &b.Email, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Branch{}, ErrNotFound
		}
		return Branch{}, fmt.Errorf("branches: get: %w", err)
	}
	return b, nil
}

func (r *PostgresRepo) List(ctx context.Context, f ListFilter) ([]Branch, int, error) {
	var conds []string
	var args []any

	if f.Status != nil {
		args = append(args, *f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR code ILIKE $%d)", len(args), len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM branches "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("branches: count: %w", err)
	}

	q := selectBranch + where + fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.PerPage, (f.Page-1)*f.PerPage)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("branches: list: %w", err)
	}
	defer rows.Close()

	out := []Branch{}
	for rows.Next() {
		var b Branch
		if err := rows.Scan(
			&b.ID, &b.Code, &b.Name, &b.Address, &b.Phone,
			&b.Mobile, &b.Email, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("branches: scan: %w", err)
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepo) ActiveOptions(ctx context.Context) ([]Option, error) {
	const q = `SELECT id, name FROM branches WHERE status = $1 ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q, status.Active)
	if err != nil {
		return nil, fmt.Errorf("branches: options: %w", err)
	}
	defer rows.Close()

	out := []Option{}
	for rows.Next() {
		var o Option
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, fmt.Errorf("branches: scan option: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
