package httpapi

import (
	"net/http"

	"bakery-platform/internal/status"

	"github.com/gin-gonic/gin"
)

type statusRequest struct {
	Status int `json:"status"`
}

// statusBody parses the tri-state status from a JSON body, failing the
// request itself when the value is out of vocabulary.
func statusBody(c *gin.Context) (status.Status, bool) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return 0, false
	}
	s := status.Status(req.Status)
	if !s.Valid() {
		fail(c, http.StatusUnprocessableEntity, "status must be -1, 0 or 1")
		return 0, false
	}
	return s, true
}

// statusQuery parses an optional tri-state status filter from the query
// string. Unknown values are ignored rather than rejected.
func statusQuery(c *gin.Context) (*status.Status, bool) {
	switch c.Query("status") {
	case "-1":
		s := status.Deleted
		return &s, true
	case "0":
		s := status.Inactive
		return &s, true
	case "1":
		s := status.Active
		return &s, true
	}
	return nil, false
}
