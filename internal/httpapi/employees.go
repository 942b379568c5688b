package httpapi

import (
	"encoding/csv"
	"errors"
	"net/http"

	"bakery-platform/internal/employees"

	"github.com/gin-gonic/gin"
)

// CreateEmployee adds a single employee.
func (h Handlers) CreateEmployee(c *gin.Context) {
	var req employees.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}

	e, err := h.Employees.Create(c.Request.Context(), req)
	if err != nil {
		h.employeeError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Employee created", e)
}

// UpdateEmployee applies a partial update.
func (h Handlers) UpdateEmployee(c *gin.Context) {
	var req employees.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}

	e, err := h.Employees.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.employeeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Employee updated", e)
}

// UpdateEmployeeStatus enables, disables or soft deletes an employee.
func (h Handlers) UpdateEmployeeStatus(c *gin.Context) {
	newStatus, ok := statusBody(c)
	if !ok {
		return
	}

	e, err := h.Employees.UpdateStatus(c.Request.Context(), c.Param("id"), newStatus)
	if err != nil {
		h.employeeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Employee status updated", e)
}

// GetEmployee fetches one employee by id.
func (h Handlers) GetEmployee(c *gin.Context) {
	e, err := h.Employees.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.employeeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Employee fetched", e)
}

// ListEmployees lists employees with branch, status and search filters.
func (h Handlers) ListEmployees(c *gin.Context) {
	page, perPage := pagination(c)
	f := employees.ListFilter{
		BranchID: c.Query("branch_id"),
		Search:   c.Query("search"),
		Page:     page,
		PerPage:  perPage,
	}
	if s, ok := statusQuery(c); ok {
		f.Status = s
	}

	list, total, err := h.Employees.List(c.Request.Context(), f)
	if err != nil {
		fail(c, http.StatusInternalServerError, "could not fetch employees")
		return
	}
	respond(c, http.StatusOK, "Employees fetched", paged(list, total, page, perPage))
}

// ImportEmployees bulk-creates employees from an uploaded CSV file. The
// file's first row is a header; columns are employee code, name, mobile,
// designation name and branch code.
func (h Handlers) ImportEmployees(c *gin.Context) {
	rows, fileName, ok := csvUpload(c)
	if !ok {
		return
	}

	res, err := h.Employees.Import(c.Request.Context(), fileName, rows)
	if err != nil {
		fail(c, http.StatusInternalServerError, "import failed")
		return
	}
	if res.Imported == 0 && len(res.Errors) > 0 {
		failWith(c, http.StatusUnprocessableEntity, "no rows imported", res.Errors)
		return
	}
	respond(c, http.StatusOK, "Employees imported", res)
}

func (h Handlers) employeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, employees.ErrNotFound):
		fail(c, http.StatusNotFound, "employee not found")
	case errors.Is(err, employees.ErrDuplicateCode):
		fail(c, http.StatusConflict, "employee code already exists")
	case errors.Is(err, employees.ErrInvalidArgument):
		fail(c, http.StatusUnprocessableEntity, err.Error())
	default:
		fail(c, http.StatusInternalServerError, "employee operation failed")
	}
}

// csvUpload reads the multipart "file" field into rows. Responds with the
// error itself when parsing fails.
func csvUpload(c *gin.Context) ([][]string, string, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "file is required")
		return nil, "", false
	}

	f, err := header.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, "could not read file")
		return nil, "", false
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		fail(c, http.StatusBadRequest, "file is not valid CSV")
		return nil, "", false
	}
	return rows, header.Filename, true
}
