package main

import (
	"bakery-platform/internal/httpapi"
	"bakery-platform/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic; handlers delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, authMW gin.HandlerFunc) {
	// public
	r.GET("/healthz", httpapi.Health)

	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.Refresh)
	r.POST("/auth/forgot-password", h.ForgotPassword)
	r.POST("/auth/reset-password", h.ResetPassword)

	// protected API group
	v1 := r.Group("/v1")
	v1.Use(authMW)
	{
		v1.GET("/profile", h.Profile)
		v1.POST("/auth/change-password", h.ChangePassword)

		// branch-scoped routes
		branch := v1.Group("/branch")
		branch.Use(rbac.RequireAnyRole(rbac.RoleBranch))
		branch.Use(rbac.RequireBranch())
		{
			branch.GET("/dashboard", h.BranchDashboard)

			branch.GET("/orders", h.BranchOrders)
			branch.GET("/orders/:id", h.BranchOrderDetails)
			branch.POST("/orders", h.CreateOrder)
			branch.PATCH("/orders/:id/status", h.UpdateOrderStatus)

			branch.GET("/stock", h.StockByDate)
		}

		// admin routes
		admin := v1.Group("/admin")
		admin.Use(rbac.RequireAnyRole(rbac.RoleAdmin))
		{
			admin.GET("/dashboard", h.AdminDashboard)

			admin.GET("/audit-logs", h.AuditLogs)
			admin.GET("/audit-logs/tables", h.LoggableTables)
			admin.GET("/audit-logs/actions", h.LoggableActions)

			admin.GET("/orders", h.AdminOrders)
			admin.GET("/orders/:id", h.AdminOrderDetails)
			admin.POST("/orders", h.CreateOrder)
			admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)

			admin.GET("/employees", h.ListEmployees)
			admin.GET("/employees/:id", h.GetEmployee)
			admin.POST("/employees", h.CreateEmployee)
			admin.PATCH("/employees/:id", h.UpdateEmployee)
			admin.PATCH("/employees/:id/status", h.UpdateEmployeeStatus)
			admin.POST("/employees/import", h.ImportEmployees)

			admin.GET("/items", h.ListItems)
			admin.GET("/items/:id", h.GetItem)
			admin.POST("/items", h.CreateItem)
			admin.PATCH("/items/:id", h.UpdateItem)
			admin.PATCH("/items/:id/status", h.UpdateItemStatus)
			admin.POST("/items/import", h.ImportItems)

			admin.GET("/branches", h.ListBranches)
			admin.GET("/branch-options", h.BranchOptions)
			admin.GET("/branches/:id", h.GetBranch)
			admin.POST("/branches", h.CreateBranch)
			admin.PATCH("/branches/:id", h.UpdateBranch)
			admin.PATCH("/branches/:id/status", h.UpdateBranchStatus)

			admin.GET("/designations", h.ListDesignations)
			admin.GET("/designation-options", h.DesignationOptions)
			admin.POST("/designations", h.CreateDesignation)
			admin.PATCH("/designations/:id", h.RenameDesignation)
			admin.PATCH("/designations/:id/status", h.UpdateDesignationStatus)

			admin.POST("/trips/stock", h.AddStock)
			admin.GET("/trips/:id", h.TripDetails)
			admin.GET("/branches/:id/stock", h.AdminStockByDate)
		}
	}
}
