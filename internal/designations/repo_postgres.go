package designations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bakery-platform/internal/audit"
	"bakery-platform/internal/status"
	"bakery-platform/pkg/utils"
)

// PostgresRepo persists designations; audit records commit in the same
// transaction.
//
// Assumed table:
//
//	designations (
//	  id uuid primary key,
//	  designation varchar not null,
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

const selectDesignation = `
SELECT id, designation, status, created_at, updated_at
FROM designations
`

func (r *PostgresRepo) Create(ctx context.Context, d Designation, rec *audit.Record) error {
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		const q = `
INSERT INTO designations (id, designation, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5)
`
		if _, err := tx.ExecContext(ctx, q, d.ID, d.Name, d.Status, d.CreatedAt, d.UpdatedAt); err != nil {
			return fmt.Errorf("designations: insert: %w", err)
		}
		if rec != nil {
			return audit.AppendTx(ctx, tx, *rec)
		}
		return nil
	})
}

func (r *PostgresRepo) Update(ctx context.Context, d Designation, rec *audit.Record) error {
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		const q = `
UPDATE designations
SET designation = $2, status = $3, updated_at = $4
WHERE id = $1
`
		res, err := tx.ExecContext(ctx, q, d.ID, d.Name, d.Status, d.UpdatedAt)
		if err != nil {
			return fmt.Errorf("designations: update: %w", err)
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

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Designation, error) {
	return r.getOne(ctx, selectDesignation+"WHERE id = $1", id)
}

func (r *PostgresRepo) GetByName(ctx context.Context, name string) (Designation, error) {
	return r.getOne(ctx, selectDesignation+"WHERE LOWER(designation) = LOWER($1)", name)
}

func (r *PostgresRepo) getOne(ctx context.Context, q string, arg any) (Designation, error) {
	var d Designation
	err := r.db.QueryRowContext(ctx, q, arg).Scan(&d.ID, &d.Name, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Designation{}, ErrNotFound
		}
		return Designation{}, fmt.Errorf("designations: get: %w", err)
	}
	return d, nil
}

func (r *PostgresRepo) List(ctx context.Context, f ListFilter) ([]Designation, int, error) {
	var conds []string
	var args []any

	if f.Status != nil {
		args = append(args, *f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("designation ILIKE $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM designations "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("designations: count: %w", err)
	}

	q := selectDesignation + where + fmt.Sprintf(" ORDER BY designation ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.PerPage, (f.Page-1)*f.PerPage)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("designations: list: %w", err)
	}
	defer rows.Close()

	out := []Designation{}
	for rows.Next() {
		var d Designation
		if err := rows.Scan(&d.ID, &d.Name, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("designations: scan: %w", err)
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepo) ActiveOptions(ctx context.Context) ([]Option, error) {
	const q = `SELECT id, designation FROM designations WHERE status = $1 ORDER BY designation ASC`
	rows, err := r.db.QueryContext(ctx, q, status.Active)
	if err != nil {
		return nil, fmt.Errorf("designations: options: %w", err)
	}
	defer rows.Close()

	out := []Option{}
	for rows.Next() {
		var o Option
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, fmt.Errorf("designations: scan option: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
