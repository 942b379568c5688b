package httpapi

import (
	"errors"
	"net/http"

	"bakery-platform/internal/auth"
	"bakery-platform/internal/orders"
	"bakery-platform/internal/rbac"
	"bakery-platform/internal/status"

	"github.com/gin-gonic/gin"
)

type createOrderRequest struct {
	BranchID      string  `json:"branch_id,omitempty"`
	EmployeeID    string  `json:"employee_id,omitempty"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	Remarks       string  `json:"remarks,omitempty"`
	DeliveryDate  string  `json:"delivery_date"`
	TotalAmount   float64 `json:"total_amount"`
	AdvanceAmount float64 `json:"advance_amount,omitempty"`
	PaymentStatus int     `json:"payment_status"`
}

// CreateOrder places an order. Branch users create for their own branch;
// admins must name the target branch.
func (h Handlers) CreateOrder(c *gin.Context) {
	uid, err := auth.UserID(c.Request.Context())
	if err != nil {
		fail(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}

	branchID := req.BranchID
	if role, _ := auth.Role(c.Request.Context()); role == rbac.RoleBranch {
		branchID, _ = auth.BranchID(c.Request.Context())
	}
	deliveryDate, ok := parseDate(req.DeliveryDate)
	if !ok {
		fail(c, http.StatusBadRequest, "delivery_date must be YYYY-MM-DD")
		return
	}

	o, err := h.Orders.Create(c.Request.Context(), uid, orders.CreateRequest{
		BranchID:      branchID,
		EmployeeID:    req.EmployeeID,
		Title:         req.Title,
		Description:   req.Description,
		Remarks:       req.Remarks,
		DeliveryDate:  deliveryDate,
		TotalAmount:   req.TotalAmount,
		AdvanceAmount: req.AdvanceAmount,
		PaymentStatus: status.PaymentStatus(req.PaymentStatus),
	})
	if err != nil {
		if errors.Is(err, orders.ErrInvalidArgument) {
			fail(c, http.StatusUnprocessableEntity, "invalid order details")
			return
		}
		fail(c, http.StatusInternalServerError, "order creation failed")
		return
	}
	respond(c, http.StatusCreated, "Order created", o)
}

type updateOrderStatusRequest struct {
	Status int `json:"status"`
}

// UpdateOrderStatus moves an order between pending, delivered and cancelled.
// Branch users can only touch orders in their own branch.
func (h Handlers) UpdateOrderStatus(c *gin.Context) {
	id := c.Param("id")

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}
	newStatus := status.OrderStatus(req.Status)
	if !newStatus.Valid() {
		fail(c, http.StatusUnprocessableEntity, "status must be -1, 0 or 1")
		return
	}

	if role, _ := auth.Role(c.Request.Context()); role == rbac.RoleBranch {
		branchID, _ := auth.BranchID(c.Request.Context())
		if _, err := h.Orders.GetForBranch(c.Request.Context(), branchID, id); err != nil {
			h.orderError(c, err)
			return
		}
	}

	o, err := h.Orders.UpdateStatus(c.Request.Context(), id, newStatus)
	if err != nil {
		h.orderError(c, err)
		return
	}
	respond(c, http.StatusOK, "Order status updated", o)
}

// BranchOrders lists the caller's branch orders, newest delivery date first.
func (h Handlers) BranchOrders(c *gin.Context) {
	branchID, err := auth.BranchID(c.Request.Context())
	if err != nil {
		fail(c, http.StatusUnauthorized, "branch_id required")
		return
	}

	page, perPage := pagination(c)
	f := orders.ListFilter{Page: page, PerPage: perPage}
	if s, ok := orderStatusQuery(c); ok {
		f.Status = s
	}

	list, total, err := h.Orders.ListForBranch(c.Request.Context(), branchID, f)
	if err != nil {
		fail(c, http.StatusInternalServerError, "could not fetch orders")
		return
	}
	respond(c, http.StatusOK, "Orders fetched", paged(list, total, page, perPage))
}

// BranchOrderDetails fetches one of the caller's branch orders.
func (h Handlers) BranchOrderDetails(c *gin.Context) {
	branchID, err := auth.BranchID(c.Request.Context())
	if err != nil {
		fail(c, http.StatusUnauthorized, "branch_id required")
		return
	}

	o, err := h.Orders.GetForBranch(c.Request.Context(), branchID, c.Param("id"))
	if err != nil {
		h.orderError(c, err)
		return
	}
	respond(c, http.StatusOK, "Order fetched", o)
}

// AdminOrders lists orders across branches, optionally filtered to one.
func (h Handlers) AdminOrders(c *gin.Context) {
	page, perPage := pagination(c)
	f := orders.ListFilter{BranchID: c.Query("branch_id"), Page: page, PerPage: perPage}
	if s, ok := orderStatusQuery(c); ok {
		f.Status = s
	}

	list, total, err := h.Orders.AdminList(c.Request.Context(), f)
	if err != nil {
		fail(c, http.StatusInternalServerError, "could not fetch orders")
		return
	}
	respond(c, http.StatusOK, "Orders fetched", paged(list, total, page, perPage))
}

// AdminOrderDetails fetches any order by id.
func (h Handlers) AdminOrderDetails(c *gin.Context) {
	o, err := h.Orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.orderError(c, err)
		return
	}
	respond(c, http.StatusOK, "Order fetched", o)
}

func (h Handlers) orderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, orders.ErrNotFound):
		fail(c, http.StatusNotFound, "order not found")
	case errors.Is(err, orders.ErrWrongBranch):
		fail(c, http.StatusForbidden, "order belongs to another branch")
	case errors.Is(err, orders.ErrInvalidArgument):
		fail(c, http.StatusUnprocessableEntity, "invalid order details")
	default:
		fail(c, http.StatusInternalServerError, "order operation failed")
	}
}

func orderStatusQuery(c *gin.Context) (*status.OrderStatus, bool) {
	raw := c.Query("status")
	if raw == "" {
		return nil, false
	}
	switch raw {
	case "-1":
		s := status.OrderCancelled
		return &s, true
	case "0":
		s := status.OrderPending
		return &s, true
	case "1":
		s := status.OrderDelivered
		return &s, true
	}
	return nil, false
}
