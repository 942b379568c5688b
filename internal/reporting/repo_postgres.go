package reporting

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bakery-platform/internal/status"
)

// PostgresRepo counts rows straight off the entity tables.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) ActiveEmployeeCount(ctx context.Context, branchID string) (int, error) {
	q := `SELECT COUNT(*) FROM employees WHERE status = $1`
	args := []any{status.Active}
	if branchID != "" {
		q += ` AND branch_id = $2`
		args = append(args, branchID)
	}

	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("reporting: employee count: %w", err)
	}
	return n, nil
}

func (r *PostgresRepo) ActiveBranchCount(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM branches WHERE status = $1`, status.Active,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("reporting: branch count: %w", err)
	}
	return n, nil
}

func (r *PostgresRepo) PendingOrderCount(ctx context.Context, branchID string, dueFrom, dueOn *time.Time) (int, error) {
	q := `SELECT COUNT(*) FROM orders WHERE status = $1`
	args := []any{status.OrderPending}

	if branchID != "" {
		args = append(args, branchID)
		q += fmt.Sprintf(` AND branch_id = $%d`, len(args))
	}
	if dueFrom != nil {
		args = append(args, *dueFrom)
		q += fmt.Sprintf(` AND delivery_date::date >= $%d::date`, len(args))
	}
	if dueOn != nil {
		args = append(args, *dueOn)
		q += fmt.Sprintf(` AND delivery_date::date = $%d::date`, len(args))
	}

	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("reporting: order count: %w", err)
	}
	return n, nil
}
