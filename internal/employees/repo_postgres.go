package employees

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bakery-platform/internal/audit"
	"bakery-platform/pkg/utils"
)

// PostgresRepo persists employees. The audit record, when present, is written
// in the same transaction as the entity save so the two cannot diverge.
//
// Assumed table:
//
//	employees (
//	  id uuid primary key,
//	  employee_code varchar unique not null,
//	  name varchar not null,
//	  mobile varchar not null,
//	  designation_id uuid not null references designations(id),
//	  branch_id uuid not null references branches(id),
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

func (r *PostgresRepo) Create(ctx context.Context, e Employee, rec *audit.Record) error {
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		const q = `
INSERT INTO employees (id, employee_code, name, mobile, designation_id, branch_id, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`
		if _, err := tx.ExecContext(ctx, q,
			e.ID, e.EmployeeCode, e.Name, e.Mobile, e.DesignationID, e.BranchID, e.Status, e.CreatedAt, e.UpdatedAt,
		); err != nil {
			return fmt.Errorf("employees: insert: %w", err)
		}
		if rec != nil {
			return audit.AppendTx(ctx, tx, *rec)
		}
		return nil
	})
}

func (r *PostgresRepo) Update(ctx context.Context, e Employee, rec *audit.Record) error {
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		const q = `
UPDATE employees
SET name = $2, mobile = $3, designation_id = $4, branch_id = $5, status = $6, updated_at = $7
WHERE id = $1
`
		res, err := tx.ExecContext(ctx, q, e.ID, e.Name, e.Mobile, e.DesignationID, e.BranchID, e.Status, e.UpdatedAt)
		if err != nil {
			return fmt.Errorf("employees: update: %w", err)
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

const selectEmployee = `
SELECT id, employee_code, name, mobile, designation_id, branch_id, status, created_at, updated_at
FROM employees
`

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Employee, error) {
	return r.getOne(ctx, selectEmployee+"WHERE id = $1", id)
}

func (r *PostgresRepo) GetByCode(ctx context.Context, code string) (Employee, error) {
	return r.getOne(ctx, selectEmployee+"WHERE employee_code = $1", code)
}

func (r *PostgresRepo) getOne(ctx context.Context, q string, arg any) (Employee, error) {
	var e Employee
	err := r.db.QueryRowContext(ctx, q, arg).Scan(
		&e.ID, &e.EmployeeCode, &e.Name, &e.Mobile, &e.DesignationID, &e.BranchID, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Employee{}, ErrNotFound
		}
		return Employee{}, fmt.Errorf("employees: get: %w", err)
	}
	return e, nil
}

func (r *PostgresRepo) List(ctx context.Context, f ListFilter) ([]Employee, int, error) {
	var conds []string
	var args []any

	if f.BranchID != "" {
		args = append(args, f.BranchID)
		conds = append(conds, fmt.Sprintf("branch_id = $%d", len(args)))
	}
	if f.Status != nil {
		args = append(args, *f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM employees "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("employees: count: %w", err)
	}

	q := selectEmployee + where + fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.PerPage, (f.Page-1)*f.PerPage)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("employees: list: %w", err)
	}
	defer rows.Close()

	out := []Employee{}
	for rows.Next() {
		var e Employee
		if err := rows.Scan(
			&e.ID, &e.EmployeeCode, &e.Name, &e.Mobile, &e.DesignationID, &e.BranchID, &e.Status, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("employees: scan: %w", err)
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}
