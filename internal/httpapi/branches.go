package httpapi

import (
	"errors"
	"net/http"

	"bakery-platform/internal/branches"

	"github.com/gin-gonic/gin"
)

// CreateBranch adds a branch.
func (h Handlers) CreateBranch(c *gin.Context) {
	var req branches.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}

	b, err := h.Branches.Create(c.Request.Context(), req)
	if err != nil {
		h.branchError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Branch created", b)
}

// UpdateBranch applies a partial update.
func (h Handlers) UpdateBranch(c *gin.Context) {
	var req branches.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}

	b, err := h.Branches.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.branchError(c, err)
		return
	}
	respond(c, http.StatusOK, "Branch updated", b)
}

// UpdateBranchStatus enables, disables or soft deletes a branch.
func (h Handlers) UpdateBranchStatus(c *gin.Context) {
	newStatus, ok := statusBody(c)
	if !ok {
		return
	}

	b, err := h.Branches.UpdateStatus(c.Request.Context(), c.Param("id"), newStatus)
	if err != nil {
		h.branchError(c, err)
		return
	}
	respond(c, http.StatusOK, "Branch status updated", b)
}

// GetBranch fetches one branch by id.
func (h Handlers) GetBranch(c *gin.Context) {
	b, err := h.Branches.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.branchError(c, err)
		return
	}
	respond(c, http.StatusOK, "Branch fetched", b)
}

// ListBranches lists branches with status and search filters.
func (h Handlers) ListBranches(c *gin.Context) {
	page, perPage := pagination(c)
	f := branches.ListFilter{Search: c.Query("search"), Page: page, PerPage: perPage}
	if s, ok := statusQuery(c); ok {
		f.Status = s
	}

	list, total, err := h.Branches.List(c.Request.Context(), f)
	if err != nil {
		fail(c, http.StatusInternalServerError, "could not fetch branches")
		return
	}
	respond(c, http.StatusOK, "Branches fetched", paged(list, total, page, perPage))
}

// BranchOptions returns id and name of active branches for dropdowns.
func (h Handlers) BranchOptions(c *gin.Context) {
	opts, err := h.Branches.ActiveOptions(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "could not fetch branches")
		return
	}
	respond(c, http.StatusOK, "Branches fetched", opts)
}

func (h Handlers) branchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, branches.ErrNotFound):
		fail(c, http.StatusNotFound, "branch not found")
	case errors.Is(err, branches.ErrDuplicateCode):
		fail(c, http.StatusConflict, "branch code already exists")
	case errors.Is(err, branches.ErrInvalidArgument):
		fail(c, http.StatusUnprocessableEntity, "invalid branch details")
	default:
		fail(c, http.StatusInternalServerError, "branch operation failed")
	}
}
