package audit

import "time"

// Record is an immutable, append-only audit log entry.
//
// Invariants:
// - Records are never updated or deleted by normal operation.
// - Every record belongs to exactly one (table, record_id) pair.
// - performed_by is null when the system acted autonomously or the acting
//   user was later deleted (FK set-null-on-delete).
//
// Storage (Postgres): table audit_logs with indexes on ("table", record_id)
// and (action). INSERT-only.
type Record struct {
	ID     string `json:"id" db:"id"`
	Action Action `json:"action" db:"action"`

	// Table is the logical collection the change applies to, e.g. "orders".
	Table string `json:"table" db:"table"`

	// RecordID identifies the affected row. For bulk imports this is the
	// first imported row's id; the full list lives in Comments.
	RecordID string `json:"record_id" db:"record_id"`

	// Description is a short human-readable summary derived from the action,
	// the table and (for updates) the changed field names.
	Description string `json:"description,omitempty" db:"description"`

	// Comments is an optional JSON payload, opaque beyond storage. Bulk
	// imports use it for counts, imported ids and per-row errors.
	Comments string `json:"comments,omitempty" db:"comments"`

	// PerformedBy is the acting user's id, nil for system-initiated changes.
	PerformedBy *string `json:"performed_by,omitempty" db:"performed_by"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Action is the closed vocabulary of auditable actions.
type Action string

const (
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionImport    Action = "import"
	ActionEnable    Action = "enable"
	ActionDisable   Action = "disable"
	ActionDelivered Action = "delivered"
	ActionCancel    Action = "cancel"
	ActionComplete  Action = "complete"
)

// Actions returns the closed action vocabulary in a stable order,
// used to populate UI filters.
func Actions() []Action {
	return []Action{
		ActionCreate,
		ActionUpdate,
		ActionDelete,
		ActionImport,
		ActionEnable,
		ActionDisable,
		ActionDelivered,
		ActionCancel,
		ActionComplete,
	}
}

// Performer is the resolved acting user attached to query results.
// A missing or deleted user renders as the sentinel, never as an error.
type Performer struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
	Role string  `json:"role"`
}

// DeletedPerformer is the sentinel rendered when performed_by no longer
// resolves to a user.
func DeletedPerformer() Performer {
	return Performer{ID: nil, Name: "Deleted User", Role: "N/A"}
}

// RecordWithPerformer is a query result row.
type RecordWithPerformer struct {
	Record
	Performer Performer `json:"performed_by_user"`
}

// Filter selects audit records for display.
// StartDate/EndDate are inclusive by calendar date, not instant.
type Filter struct {
	Search   string
	Action   Action
	Table    string
	RecordID string

	StartDate *time.Time
	EndDate   *time.Time

	Page    int
	PerPage int
}

const defaultPerPage = 10

func (f Filter) withDefaults() Filter {
	out := f
	if out.Page <= 0 {
		out.Page = 1
	}
	if out.PerPage <= 0 {
		out.PerPage = defaultPerPage
	}
	return out
}

// ImportRowError captures one failed row of a bulk import.
type ImportRowError struct {
	Row    int               `json:"row"`
	Errors map[string]string `json:"errors"`
}

// ImportSummary is the Comments payload of an import record.
type ImportSummary struct {
	TotalImported int              `json:"total_imported"`
	ImportedIDs   []string         `json:"imported_ids"`
	FileName      string           `json:"file_name"`
	Errors        []ImportRowError `json:"errors"`
}
