package httpapi

import (
	"errors"
	"net/http"

	"bakery-platform/internal/designations"

	"github.com/gin-gonic/gin"
)

type designationRequest struct {
	Designation string `json:"designation"`
}

// CreateDesignation adds a designation.
func (h Handlers) CreateDesignation(c *gin.Context) {
	var req designationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}

	d, err := h.Designations.Create(c.Request.Context(), req.Designation)
	if err != nil {
		h.designationError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Designation created", d)
}

// RenameDesignation changes a designation's name.
func (h Handlers) RenameDesignation(c *gin.Context) {
	var req designationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}

	d, err := h.Designations.Rename(c.Request.Context(), c.Param("id"), req.Designation)
	if err != nil {
		h.designationError(c, err)
		return
	}
	respond(c, http.StatusOK, "Designation updated", d)
}

// UpdateDesignationStatus enables, disables or soft deletes a designation.
func (h Handlers) UpdateDesignationStatus(c *gin.Context) {
	newStatus, ok := statusBody(c)
	if !ok {
		return
	}

	d, err := h.Designations.UpdateStatus(c.Request.Context(), c.Param("id"), newStatus)
	if err != nil {
		h.designationError(c, err)
		return
	}
	respond(c, http.StatusOK, "Designation status updated", d)
}

// ListDesignations lists designations with status and search filters.
func (h Handlers) ListDesignations(c *gin.Context) {
	page, perPage := pagination(c)
	f := designations.ListFilter{Search: c.Query("search"), Page: page, PerPage: perPage}
	if s, ok := statusQuery(c); ok {
		f.Status = s
	}

	list, total, err := h.Designations.List(c.Request.Context(), f)
	if err != nil {
		fail(c, http.StatusInternalServerError, "could not fetch designations")
		return
	}
	respond(c, http.StatusOK, "Designations fetched", paged(list, total, page, perPage))
}

// DesignationOptions returns id and name of active designations for
// dropdowns.
func (h Handlers) DesignationOptions(c *gin.Context) {
	opts, err := h.Designations.ActiveOptions(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "could not fetch designations")
		return
	}
	respond(c, http.StatusOK, "Designations fetched", opts)
}

func (h Handlers) designationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, designations.ErrNotFound):
		fail(c, http.StatusNotFound, "designation not found")
	case errors.Is(err, designations.ErrDuplicateName):
		fail(c, http.StatusConflict, "designation already exists")
	case errors.Is(err, designations.ErrInvalidArgument):
		fail(c, http.StatusUnprocessableEntity, "invalid designation details")
	default:
		fail(c, http.StatusInternalServerError, "designation operation failed")
	}
}
