package httpapi

import (
	"errors"
	"net/http"

	"bakery-platform/internal/items"

	"github.com/gin-gonic/gin"
)

// CreateItem adds a catalogue item.
func (h Handlers) CreateItem(c *gin.Context) {
	var req items.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}

	it, err := h.Items.Create(c.Request.Context(), req)
	if err != nil {
		h.itemError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Item created", it)
}

// UpdateItem applies a partial update.
func (h Handlers) UpdateItem(c *gin.Context) {
	var req items.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}

	it, err := h.Items.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.itemError(c, err)
		return
	}
	respond(c, http.StatusOK, "Item updated", it)
}

// UpdateItemStatus enables, disables or soft deletes an item.
func (h Handlers) UpdateItemStatus(c *gin.Context) {
	newStatus, ok := statusBody(c)
	if !ok {
		return
	}

	it, err := h.Items.UpdateStatus(c.Request.Context(), c.Param("id"), newStatus)
	if err != nil {
		h.itemError(c, err)
		return
	}
	respond(c, http.StatusOK, "Item status updated", it)
}

// GetItem fetches one item by id.
func (h Handlers) GetItem(c *gin.Context) {
	it, err := h.Items.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.itemError(c, err)
		return
	}
	respond(c, http.StatusOK, "Item fetched", it)
}

// ListItems lists items name-ascending with status and search filters.
func (h Handlers) ListItems(c *gin.Context) {
	page, perPage := pagination(c)
	f := items.ListFilter{Search: c.Query("search"), Page: page, PerPage: perPage}
	if s, ok := statusQuery(c); ok {
		f.Status = s
	}

	list, total, err := h.Items.List(c.Request.Context(), f)
	if err != nil {
		fail(c, http.StatusInternalServerError, "could not fetch items")
		return
	}
	respond(c, http.StatusOK, "Items fetched", paged(list, total, page, perPage))
}

// ImportItems bulk-creates items from an uploaded CSV file. Columns are
// name, category and description; the first row is a header.
func (h Handlers) ImportItems(c *gin.Context) {
	rows, fileName, ok := csvUpload(c)
	if !ok {
		return
	}

	res, err := h.Items.Import(c.Request.Context(), fileName, rows)
	if err != nil {
		fail(c, http.StatusInternalServerError, "import failed")
		return
	}
	if res.Imported == 0 && len(res.Errors) > 0 {
		failWith(c, http.StatusUnprocessableEntity, "no rows imported", res.Errors)
		return
	}
	respond(c, http.StatusOK, "Items imported", res)
}

func (h Handlers) itemError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, items.ErrNotFound):
		fail(c, http.StatusNotFound, "item not found")
	case errors.Is(err, items.ErrInvalidArgument):
		fail(c, http.StatusUnprocessableEntity, "invalid item details")
	default:
		fail(c, http.StatusInternalServerError, "item operation failed")
	}
}
