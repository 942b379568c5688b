package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bakery-platform/internal/auth"

	"github.com/gin-gonic/gin"
)

func performWithIdentity(t *testing.T, mw gin.HandlerFunc, userID, branchID, role string) int {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			ctx := auth.WithIdentity(c.Request.Context(), userID, branchID, role)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	})
	r.GET("/t", mw, func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRequireAnyRole(t *testing.T) {
	if code := performWithIdentity(t, RequireAnyRole(RoleAdmin), "u1", "", RoleAdmin); code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", code)
	}
	if code := performWithIdentity(t, RequireAnyRole(RoleAdmin), "u1", "b1", RoleBranch); code != http.StatusForbidden {
		t.Fatalf("expected 403 for branch user, got %d", code)
	}
	if code := performWithIdentity(t, RequireAnyRole(RoleAdmin), "", "", ""); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", code)
	}
}

func TestSuperAdminBypasses(t *testing.T) {
	if code := performWithIdentity(t, RequireAnyRole(RoleBranch), "u1", "", RoleSuperAdmin); code != http.StatusOK {
		t.Fatalf("expected 200 for super_admin, got %d", code)
	}
}

func TestRequireBranch(t *testing.T) {
	if code := performWithIdentity(t, RequireBranch(), "u1", "b1", RoleBranch); code != http.StatusOK {
		t.Fatalf("expected 200 with branch, got %d", code)
	}
	if code := performWithIdentity(t, RequireBranch(), "u1", "", RoleAdmin); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without branch, got %d", code)
	}
}
