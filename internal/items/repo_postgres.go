package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bakery-platform/internal/audit"
	"bakery-platform/pkg/utils"
)

// PostgresRepo persists items; audit records commit in the same transaction.
//
// Assumed table:
//
//	items (
//	  id uuid primary key,
//	  name varchar not null,
//	  category varchar not null,
//	  description text,
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

func (r *PostgresRepo) Create(ctx context.Context, it Item, rec *audit.Record) error {
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		const q = `
INSERT INTO items (id, name, category, description, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`
		if _, err := tx.ExecContext(ctx, q,
			it.ID, it.Name, it.Category, nullable(it.Description), it.Status, it.CreatedAt, it.UpdatedAt,
		); err != nil {
			return fmt.Errorf("items: insert: %w", err)
		}
		if rec != nil {
			return audit.AppendTx(ctx, tx, *rec)
		}
		return nil
	})
}

func (r *PostgresRepo) Update(ctx context.Context, it Item, rec *audit.Record) error {
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		const q = `
UPDATE items
SET name = $2, category = $3, description = $4, status = $5, updated_at = $6
WHERE id = $1
`
		res, err := tx.ExecContext(ctx, q, it.ID, it.Name, it.Category, nullable(it.Description), it.Status, it.UpdatedAt)
		if err != nil {
			return fmt.Errorf("items: update: %w", err)
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

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Item, error) {
	const q = `
SELECT id, name, category, COALESCE(description, ''), status, created_at, updated_at
FROM items
WHERE id = $1
`
	var it Item
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&it.ID, &it.Name, &it.Category, &it.Description, &it.Status, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, fmt.Errorf("items: get: %w", err)
	}
	return it, nil
}

func (r *PostgresRepo) List(ctx context.Context, f ListFilter) ([]Item, int, error) {
	var conds []string
	var args []any

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
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("items: count: %w", err)
	}

	q := `
SELECT id, name, category, COALESCE(description, ''), status, created_at, updated_at
FROM items ` + where + fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.PerPage, (f.Page-1)*f.PerPage)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("items: list: %w", err)
	}
	defer rows.Close()

	out := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Category, &it.Description, &it.Status, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("items: scan: %w", err)
		}
		out = append(out, it)
	}
	return out, total, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
