// Package httpapi holds the Gin handlers. Keep these thin: parse and
// validate input, call internal services, return the JSON envelope.
package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"bakery-platform/internal/audit"
	"bakery-platform/internal/auth"
	"bakery-platform/internal/branches"
	"bakery-platform/internal/designations"
	"bakery-platform/internal/employees"
	"bakery-platform/internal/items"
	"bakery-platform/internal/notify"
	"bakery-platform/internal/orders"
	"bakery-platform/internal/otp"
	"bakery-platform/internal/reporting"
	"bakery-platform/internal/trips"
	"bakery-platform/internal/users"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
type Handlers struct {
	Auth         *auth.Manager
	Users        *users.Service
	Audit        *audit.Service
	Orders       *orders.Service
	Employees    *employees.Service
	Items        *items.Service
	Branches     *branches.Service
	Designations *designations.Service
	Trips        *trips.Service
	Reports      *reporting.Service
	OTP          *otp.Service
	Notify       *notify.Notifier

	// AllowReset throttles password reset requests per identifier. Nil
	// disables throttling.
	AllowReset func(ctx context.Context, identifier string) (bool, error)
}

// Every response uses the same envelope: success, message, then either data
// or errors.

func respond(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

func failWith(c *gin.Context, status int, message string, errs any) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message, "errors": errs})
}

func pagination(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "10"))
	return page, perPage
}

// paged is the data shape of every list endpoint.
func paged(items any, total, page, perPage int) gin.H {
	return gin.H{"items": items, "total": total, "page": page, "per_page": perPage}
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
