package httpapi

import (
	"net/http"

	"bakery-platform/internal/auth"

	"github.com/gin-gonic/gin"
)

// AdminDashboard returns platform-wide counters.
func (h Handlers) AdminDashboard(c *gin.Context) {
	stats, err := h.Reports.AdminStats(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "could not fetch dashboard stats")
		return
	}
	respond(c, http.StatusOK, "Dashboard stats fetched", stats)
}

// BranchDashboard returns the caller's branch counters.
func (h Handlers) BranchDashboard(c *gin.Context) {
	branchID, err := auth.BranchID(c.Request.Context())
	if err != nil {
		fail(c, http.StatusUnauthorized, "branch_id required")
		return
	}

	stats, err := h.Reports.BranchStats(c.Request.Context(), branchID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "could not fetch dashboard stats")
		return
	}
	respond(c, http.StatusOK, "Dashboard stats fetched", stats)
}
