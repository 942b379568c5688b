package trips

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bakery-platform/internal/audit"
	"bakery-platform/pkg/utils"
)

// PostgresRepo persists trips and their stock lines.
//
// Assumed tables:
//
//	trips (
//	  id uuid primary key,
//	  branch_id uuid not null references branches(id),
//	  employee_id uuid not null references employees(id),
//	  date date not null,
//	  created_at timestamptz not null,
//	  updated_at timestamptz not null
//	)
//
//	stock_items (
//	  id uuid primary key,
//	  trip_id uuid not null references trips(id) on delete cascade,
//	  item_id uuid not null references items(id),
//	  quantity numeric not null
//	)
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, t Trip, items []StockItem, rec *audit.Record) error {
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		const insertTrip = `
INSERT INTO trips (id, branch_id, employee_id, date, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6)
`
		if _, err := tx.ExecContext(ctx, insertTrip,
			t.ID, t.BranchID, t.EmployeeID, t.Date, t.CreatedAt, t.UpdatedAt,
		); err != nil {
			return fmt.Errorf("trips: insert trip: %w", err)
		}

		const insertLine = `
INSERT INTO stock_items (id, trip_id, item_id, quantity)
VALUES ($1,$2,$3,$4)
`
		for _, line := range items {
			if _, err := tx.ExecContext(ctx, insertLine, line.ID, line.TripID, line.ItemID, line.Quantity); err != nil {
				return fmt.Errorf("trips: insert stock line: %w", err)
			}
		}

		if rec != nil {
			return audit.AppendTx(ctx, tx, *rec)
		}
		return nil
	})
}

func (r *PostgresRepo) GetDetails(ctx context.Context, tripID string) (TripDetails, error) {
	const q = `
SELECT id, branch_id, employee_id, date, created_at, updated_at
FROM trips
WHERE id = $1
`
	var t Trip
	err := r.db.QueryRowContext(ctx, q, tripID).Scan(
		&t.ID, &t.BranchID, &t.EmployeeID, &t.Date, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TripDetails{}, ErrNotFound
		}
		return TripDetails{}, fmt.Errorf("trips: get: %w", err)
	}

	const lines = `
SELECT id, trip_id, item_id, quantity
FROM stock_items
WHERE trip_id = $1
`
	rows, err := r.db.QueryContext(ctx, lines, tripID)
	if err != nil {
		return TripDetails{}, fmt.Errorf("trips: stock lines: %w", err)
	}
	defer rows.Close()

	details := TripDetails{Trip: t, Items: []StockItem{}}
	for rows.Next() {
		var line StockItem
		if err := rows.Scan(&line.ID, &line.TripID, &line.ItemID, &line.Quantity); err != nil {
			return TripDetails{}, fmt.Errorf("trips: scan line: %w", err)
		}
		details.Items = append(details.Items, line)
	}
	return details, rows.Err()
}

func (r *PostgresRepo) ItemTotalsByDate(ctx context.Context, branchID string, date time.Time) ([]ItemTotal, error) {
	const q = `
SELECT i.name, SUM(s.quantity)
FROM stock_items s
JOIN items i ON s.item_id = i.id
JOIN trips t ON s.trip_id = t.id
WHERE t.branch_id = $1 AND t.date::date = $2::date
GROUP BY i.name
ORDER BY i.name ASC
`
	rows, err := r.db.QueryContext(ctx, q, branchID, date)
	if err != nil {
		return nil, fmt.Errorf("trips: totals: %w", err)
	}
	defer rows.Close()

	out := []ItemTotal{}
	for rows.Next() {
		var it ItemTotal
		if err := rows.Scan(&it.ItemName, &it.TotalQuantity); err != nil {
			return nil, fmt.Errorf("trips: scan total: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
