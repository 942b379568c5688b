package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bakery-platform/internal/audit"
	"bakery-platform/pkg/utils"
)

// PostgresRepo persists orders; audit records commit in the same transaction.
//
// Assumed table:
//
//	orders (
//	  id uuid primary key,
//	  branch_id uuid not null references branches(id),
//	  employee_id uuid references employees(id),
//	  title varchar not null,
//	  description text,
//	  remarks text,
//	  delivery_date date not null,
//	  total_amount numeric not null default 0,
//	  advance_amount numeric,
//	  payment_status smallint not null default 0,
//	  status smallint not null default 0,
//	  created_by uuid not null references users(id),
//	  created_at timestamptz not null,
//	  updated_at timestamptz not null
//	)
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const selectOrder = `
SELECT id, branch_id, COALESCE(employee_id::text, ''), title,
       COALESCE(description, ''), COALESCE(remarks, ''), delivery_date,
       total_amount, COALESCE(advance_amount, 0), payment_status, status,
       created_by, created_at, updated_at
FROM orders
`

func (r *PostgresRepo) Create(ctx context.Context, o Order, rec *audit.Record) error {
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		const q = `
INSERT INTO orders (id, branch_id, employee_id, title, description, remarks,
                    delivery_date, total_amount, advance_amount, payment_status,
                    status, created_by, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
`
		if _, err := tx.ExecContext(ctx, q,
			o.ID, o.BranchID, nullable(o.EmployeeID), o.Title, nullable(o.Description),
			nullable(o.Remarks), o.DeliveryDate, o.TotalAmount, o.AdvanceAmount,
			o.PaymentStatus, o.Status, o.CreatedBy, o.CreatedAt, o.UpdatedAt,
		); err != nil {
			return fmt.Errorf("orders: insert: %w", err)
		}
		if rec != nil {
			return audit.AppendTx(ctx, tx, *rec)
		}
		return nil
	})
}

func (r *PostgresRepo) Update(ctx context.Context, o Order, rec *audit.Record) error {
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		const q = `
UPDATE orders
SET employee_id = $2, title = $3, description = $4, remarks = $5,
    delivery_date = $6, total_amount = $7, advance_amount = $8,
    payment_status = $9, status = $10, updated_at = $11
WHERE id = $1
`
		res, err := tx.ExecContext(ctx, q,
			o.ID, nullable(o.EmployeeID), o.Title, nullable(o.Description),
			nullable(o.Remarks), o.DeliveryDate, o.TotalAmount, o.AdvanceAmount,
			o.PaymentStatus, o.Status, o.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("orders: update: %w", err)
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

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, selectOrder+"WHERE id = $1", id).Scan(
		&o.ID, &o.BranchID, &o.EmployeeID, &o.Title, &o.Description, &o.Remarks,
		&o.DeliveryDate, &o.TotalAmount, &o.AdvanceAmount, &o.PaymentStatus,
		&o.Status, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, fmt.Errorf("orders: get: %w", err)
	}
	return o, nil
}

func (r *PostgresRepo) List(ctx context.Context, f ListFilter) ([]Order, int, error) {
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

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("orders: count: %w", err)
	}

	q := selectOrder + where + fmt.Sprintf(" ORDER BY delivery_date DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.PerPage, (f.Page-1)*f.PerPage)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("orders: list: %w", err)
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.BranchID, &o.EmployeeID, &o.Title, &o.Description, &o.Remarks,
			&o.DeliveryDate, &o.TotalAmount, &o.AdvanceAmount, &o.PaymentStatus,
			&o.Status, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("orders: scan: %w", err)
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
