package audit

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// PostgresRepo persists audit records in the audit_logs table.
//
// Assumed schema (migrations are managed outside this service):
//
//	audit_logs (
//	  id uuid primary key,
//	  action varchar not null,
//	  "table" varchar not null,
//	  record_id uuid not null,
//	  description text,
//	  comments text,
//	  performed_by uuid references users(id) on delete set null,
//	  created_at timestamptz not null,
//	  updated_at timestamptz not null
//	)
//
// with indexes on ("table", record_id) and (action).
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const insertRecordSQL = `
INSERT INTO audit_logs (
  id, action, "table", record_id, description, comments, performed_by, created_at, updated_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$8
)
`

func (r *PostgresRepo) Append(ctx context.Context, rec Record) error {
	_, err := r.db.ExecContext(ctx, insertRecordSQL,
		rec.ID,
		rec.Action,
		rec.Table,
		rec.RecordID,
		nullable(rec.Description),
		nullable(rec.Comments),
		rec.PerformedBy,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("audit: append: %w", err)
	}
	return nil
}

// AppendTx inserts a record inside an existing transaction. Entity
// repositories use it so the entity save and its audit record commit or roll
// back together.
func AppendTx(ctx context.Context, tx *sql.Tx, rec Record) error {
	_, err := tx.ExecContext(ctx, insertRecordSQL,
		rec.ID,
		rec.Action,
		rec.Table,
		rec.RecordID,
		nullable(rec.Description),
		nullable(rec.Comments),
		rec.PerformedBy,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("audit: append: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Query(ctx context.Context, f Filter) ([]RecordWithPerformer, int, error) {
	where, args := buildWhere(f)

	countQ := `SELECT COUNT(*) FROM audit_logs a LEFT JOIN users u ON u.id = a.performed_by` + where
	var total int
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("audit: count: %w", err)
	}

	q := `
SELECT a.id, a.action, a."table", a.record_id, a.description, a.comments, a.performed_by, a.created_at,
       u.name, u.role
FROM audit_logs a
LEFT JOIN users u ON u.id = a.performed_by` + where + fmt.Sprintf(`
ORDER BY a.created_at DESC
LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)

	args = append(args, f.PerPage, (f.Page-1)*f.PerPage)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("audit: query: %w", err)
	}
	defer rows.Close()

	out := []RecordWithPerformer{}
	for rows.Next() {
		var (
			rec            Record
			desc, comments sql.NullString
			name, role     sql.NullString
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.Action,
			&rec.Table,
			&rec.RecordID,
			&desc,
			&comments,
			&rec.PerformedBy,
			&rec.CreatedAt,
			&name,
			&role,
		); err != nil {
			return nil, 0, fmt.Errorf("audit: scan: %w", err)
		}
		rec.Description = desc.String
		rec.Comments = comments.String

		p := DeletedPerformer()
		if rec.PerformedBy != nil && name.Valid {
			p = Performer{ID: rec.PerformedBy, Name: name.String, Role: role.String}
		}
		out = append(out, RecordWithPerformer{Record: rec, Performer: p})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("audit: rows: %w", err)
	}
	return out, total, nil
}

func (r *PostgresRepo) DistinctTables(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT "table" FROM audit_logs ORDER BY "table"`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("audit: distinct tables: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var tbl string
		if err := rows.Scan(&tbl); err != nil {
			return nil, fmt.Errorf("audit: scan: %w", err)
		}
		out = append(out, tbl)
	}
	return out, rows.Err()
}

func buildWhere(f Filter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(a.description ILIKE $%d OR a.comments ILIKE $%d OR u.name ILIKE $%d OR u.role ILIKE $%d)",
			n, n, n, n))
	}
	if f.Action != "" {
		add("a.action = $%d", f.Action)
	}
	if f.Table != "" {
		add(`a."table" = $%d`, f.Table)
	}
	if f.RecordID != "" {
		add("a.record_id = $%d", f.RecordID)
	}
	if f.StartDate != nil {
		add("a.created_at::date >= $%d::date", *f.StartDate)
	}
	if f.EndDate != nil {
		add("a.created_at::date <= $%d::date", *f.EndDate)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "\nWHERE " + strings.Join(conds, " AND "), args
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
