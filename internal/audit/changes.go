package audit

import "bakery-platform/internal/status"

// Change is one dirty field at save time: the attribute's name and its value
// before and after the mutation.
type Change struct {
	Field string
	Old   any
	New   any
}

// ChangeSet is the ordered dirty set of an update. Order is the order in which
// the caller applied fields; descriptions preserve it.
type ChangeSet []Change

// Fields returns the changed field names in dirty-set order.
func (cs ChangeSet) Fields() []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Field)
	}
	return out
}

// StatusChange reports the new status value if the "status" field is dirty.
// Entity packages record status values with their own typed constants; all of
// them normalize to the same small-int convention.
func (cs ChangeSet) StatusChange() (int, bool) {
	for _, c := range cs {
		if c.Field != "status" {
			continue
		}
		switch v := c.New.(type) {
		case int:
			return v, true
		case int64:
			return int(v), true
		case status.Status:
			return int(v), true
		case status.OrderStatus:
			return int(v), true
		}
	}
	return 0, false
}
