package httpapi

import (
	"errors"
	"net/http"

	"bakery-platform/internal/auth"
	"bakery-platform/internal/trips"

	"github.com/gin-gonic/gin"
)

// AddStock creates a trip with its stock load in one request.
func (h Handlers) AddStock(c *gin.Context) {
	var req trips.AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}

	trip, err := h.Trips.AddStock(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, trips.ErrInvalidArgument) {
			fail(c, http.StatusUnprocessableEntity, "invalid stock details")
			return
		}
		fail(c, http.StatusInternalServerError, "stock creation failed")
		return
	}
	respond(c, http.StatusCreated, "Stock added successfully", gin.H{"trip_id": trip.ID})
}

// TripDetails fetches a trip with its stock lines.
func (h Handlers) TripDetails(c *gin.Context) {
	details, err := h.Trips.GetTripDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, trips.ErrNotFound) {
			fail(c, http.StatusNotFound, "trip not found")
			return
		}
		fail(c, http.StatusInternalServerError, "could not fetch trip")
		return
	}
	respond(c, http.StatusOK, "Trip fetched", details)
}

// StockByDate aggregates the caller's branch stock per item for a calendar
// date.
func (h Handlers) StockByDate(c *gin.Context) {
	branchID, err := auth.BranchID(c.Request.Context())
	if err != nil {
		fail(c, http.StatusUnauthorized, "branch_id required")
		return
	}

	date, ok := parseDate(c.Query("date"))
	if !ok {
		fail(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	totals, err := h.Trips.ItemsByDate(c.Request.Context(), branchID, date)
	if err != nil {
		fail(c, http.StatusInternalServerError, "could not fetch stock summary")
		return
	}
	respond(c, http.StatusOK, "Fetched stock summary for "+c.Query("date"), gin.H{
		"date":      c.Query("date"),
		"branch_id": branchID,
		"items":     totals,
	})
}

// AdminStockByDate aggregates any branch's stock per item for a date.
func (h Handlers) AdminStockByDate(c *gin.Context) {
	branchID := c.Param("branch_id")
	date, ok := parseDate(c.Query("date"))
	if !ok {
		fail(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	totals, err := h.Trips.ItemsByDate(c.Request.Context(), branchID, date)
	if err != nil {
		fail(c, http.StatusInternalServerError, "could not fetch stock summary")
		return
	}
	respond(c, http.StatusOK, "Fetched stock summary for "+c.Query("date"), gin.H{
		"date":      c.Query("date"),
		"branch_id": branchID,
		"items":     totals,
	})
}
