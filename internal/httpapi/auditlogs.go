package httpapi

import (
	"errors"
	"net/http"

	"bakery-platform/internal/audit"

	"github.com/gin-gonic/gin"
)

// AuditLogs lists audit records with the full filter surface: free-text
// search, action, table, record id and an inclusive calendar date range.
func (h Handlers) AuditLogs(c *gin.Context) {
	page, perPage := pagination(c)
	f := audit.Filter{
		Search:   c.Query("search"),
		Action:   audit.Action(c.Query("action")),
		Table:    c.Query("table"),
		RecordID: c.Query("record_id"),
		Page:     page,
		PerPage:  perPage,
	}
	if t, ok := parseDate(c.Query("start_date")); ok {
		f.StartDate = &t
	}
	if t, ok := parseDate(c.Query("end_date")); ok {
		f.EndDate = &t
	}

	recs, total, err := h.Audit.Query(c.Request.Context(), f)
	if err != nil {
		if errors.Is(err, audit.ErrInvalidFilter) {
			fail(c, http.StatusBadRequest, "invalid filter")
			return
		}
		fail(c, http.StatusInternalServerError, "could not fetch audit logs")
		return
	}
	respond(c, http.StatusOK, "Audit logs fetched", paged(recs, total, f.Page, f.PerPage))
}

// LoggableTables returns the tables that currently have audit records, for
// the filter dropdown.
func (h Handlers) LoggableTables(c *gin.Context) {
	tables, err := h.Audit.DistinctTables(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "could not fetch tables")
		return
	}
	respond(c, http.StatusOK, "Loggable tables fetched", tables)
}

// LoggableActions returns the closed action vocabulary.
func (h Handlers) LoggableActions(c *gin.Context) {
	respond(c, http.StatusOK, "Loggable actions fetched", audit.Actions())
}
