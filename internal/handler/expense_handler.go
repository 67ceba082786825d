package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"churchadmin/internal/middleware"
	"churchadmin/internal/permission"
	"churchadmin/internal/service"
	"churchadmin/pkg/pagination"
	"churchadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	expenseService service.ExpenseService
	exportService  service.ExportService
}

func NewExpenseHandler(expenseService service.ExpenseService, exportService service.ExportService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, exportService: exportService}
}

func (h *ExpenseHandler) RegisterRoutes(router *gin.RouterGroup) {
	expenses := router.Group("/expenses")
	{
		expenses.GET("", middleware.RequirePermission(permission.Expense, permission.View), h.ListExpenses)
		expenses.POST("", middleware.RequirePermission(permission.Expense, permission.Create), h.SubmitExpense)
		expenses.GET("/export", middleware.RequirePermission(permission.Report, permission.Export), h.ExportExpenses)
		expenses.POST("/bulk/approve", middleware.RequirePermission(permission.Expense, permission.Approve), h.BulkApprove)
		expenses.POST("/bulk/pay", middleware.RequirePermission(permission.Expense, permission.Pay), h.BulkPay)
		expenses.GET("/:id", middleware.RequirePermission(permission.Expense, permission.View), h.GetExpense)
		expenses.PUT("/:id", middleware.RequirePermission(permission.Expense, permission.Update), h.UpdateExpense)
		expenses.PUT("/:id/approve", middleware.RequirePermission(permission.Expense, permission.Approve), h.ApproveExpense)
		expenses.PUT("/:id/reject", middleware.RequirePermission(permission.Expense, permission.Reject), h.RejectExpense)
		expenses.PUT("/:id/pay", middleware.RequirePermission(permission.Expense, permission.Pay), h.PayExpense)
		expenses.DELETE("/:id", middleware.RequirePermission(permission.Expense, permission.Delete), h.DeleteExpense)
	}
}

func expenseFilter(c *gin.Context) service.ExpenseFilter {
	p := pagination.Parse(c)
	return service.ExpenseFilter{
		Status:        c.Query("status"),
		CategoryID:    c.Query("category_id"),
		PaymentMethod: c.Query("payment_method"),
		DateFrom:      c.Query("date_from"),
		DateTo:        c.Query("date_to"),
		Search:        c.Query("search"),
		Page:          p.Page,
		Limit:         p.Limit,
	}
}

// bindExpenseForm accepts JSON, or multipart with an optional "receipt" file
func bindExpenseForm(c *gin.Context) (service.ExpenseForm, *multipart.FileHeader, error) {
	var form service.ExpenseForm
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		err := c.ShouldBindJSON(&form)
		return form, nil, err
	}
	if err := c.ShouldBind(&form); err != nil {
		return form, nil, err
	}
	fh, err := c.FormFile("receipt")
	if errors.Is(err, http.ErrMissingFile) {
		return form, nil, nil
	}
	return form, fh, err
}

// ListExpenses returns a filtered page of expense records
// @Summary      List expense records
// @Tags         expenses
// @Security     BearerAuth
// @Produce      json
// @Param        status          query  string  false  "pending, approved, rejected or paid"
// @Param        category_id     query  string  false  "Expense category id"
// @Param        payment_method  query  string  false  "Payment method"
// @Param        date_from       query  string  false  "YYYY-MM-DD"
// @Param        date_to         query  string  false  "YYYY-MM-DD"
// @Param        search          query  string  false  "Transaction id, vendor, description or reference"
// @Param        page            query  int     false  "Page number (default 1)"
// @Param        limit           query  int     false  "Items per page (default 20)"
// @Success      200  {object}  response.Response{data=response.Page}
// @Router       /api/expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	p := pagination.Parse(c)
	items, total, err := h.expenseService.List(c.Request.Context(), user, expenseFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, p.Wrap(items, total)))
}

// SubmitExpense handles a new expense request with an optional receipt
// @Summary      Submit an expense
// @Description  Checks the category's monthly budget. Small expenses in categories that do not require approval, and any expense submitted by a leader, are approved immediately.
// @Tags         expenses
// @Security     BearerAuth
// @Accept       json,mpfd
// @Produce      json
// @Param        request  body      service.ExpenseForm  true   "Expense details"
// @Param        receipt  formData  file                 false  "Receipt (jpeg, png or pdf)"
// @Success      201      {object}  response.Response{data=service.ExpenseResponse}
// @Failure      422      {object}  response.Response
// @Router       /api/expenses [post]
func (h *ExpenseHandler) SubmitExpense(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	form, receipt, err := bindExpenseForm(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.expenseService.Submit(c.Request.Context(), user, form, receipt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, res))
}

// GetExpense
// @Summary      Get an expense
// @Tags         expenses
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Expense id"
// @Success      200  {object}  response.Response{data=service.ExpenseResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	res, err := h.expenseService.Get(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// UpdateExpense
// @Summary      Edit a pending expense
// @Tags         expenses
// @Security     BearerAuth
// @Accept       json,mpfd
// @Produce      json
// @Param        id       path      string               true   "Expense id"
// @Param        request  body      service.ExpenseForm  true   "Expense details"
// @Param        receipt  formData  file                 false  "Replacement receipt"
// @Success      200      {object}  response.Response{data=service.ExpenseResponse}
// @Failure      409      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	form, receipt, err := bindExpenseForm(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.expenseService.Update(c.Request.Context(), user, c.Param("id"), form, receipt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// ApproveExpense
// @Summary      Approve a pending expense
// @Tags         expenses
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Expense id"
// @Success      200  {object}  response.Response{data=service.ExpenseResponse}
// @Failure      409  {object}  response.Response
// @Router       /api/expenses/{id}/approve [put]
func (h *ExpenseHandler) ApproveExpense(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	res, err := h.expenseService.Approve(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// RejectExpense
// @Summary      Reject a pending expense
// @Tags         expenses
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Expense id"
// @Param        request  body      service.RejectExpenseRequest  true  "Reason"
// @Success      200      {object}  response.Response{data=service.ExpenseResponse}
// @Failure      409      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/expenses/{id}/reject [put]
func (h *ExpenseHandler) RejectExpense(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	var req service.RejectExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.expenseService.Reject(c.Request.Context(), user, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// PayExpense
// @Summary      Mark an approved expense as paid
// @Tags         expenses
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true   "Expense id"
// @Param        request  body      service.PaymentDetails  false  "Payment date defaults to today"
// @Success      200      {object}  response.Response{data=service.ExpenseResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/expenses/{id}/pay [put]
func (h *ExpenseHandler) PayExpense(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	var details service.PaymentDetails
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&details); err != nil {
			badRequest(c, err)
			return
		}
	}
	res, err := h.expenseService.MarkPaid(c.Request.Context(), user, c.Param("id"), details)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// BulkApprove approves each listed expense independently
// @Summary      Approve several expenses
// @Tags         expenses
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.BulkRequest  true  "Expense ids"
// @Success      200      {object}  response.Response{data=service.BulkResult}
// @Router       /api/expenses/bulk/approve [post]
func (h *ExpenseHandler) BulkApprove(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	var req service.BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.expenseService.BulkApprove(c.Request.Context(), user, req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// BulkPay marks each listed expense paid independently
// @Summary      Pay several expenses
// @Tags         expenses
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.BulkPayRequest  true  "Expense ids and payment details"
// @Success      200      {object}  response.Response{data=service.BulkResult}
// @Router       /api/expenses/bulk/pay [post]
func (h *ExpenseHandler) BulkPay(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	var req service.BulkPayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.expenseService.BulkMarkPaid(c.Request.Context(), user, req.IDs, req.PaymentDetails)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// DeleteExpense
// @Summary      Delete a pending expense
// @Tags         expenses
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Expense id"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	if err := h.expenseService.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Expense deleted"}))
}

// ExportExpenses
// @Summary      Export expense records
// @Tags         expenses
// @Security     BearerAuth
// @Produce      text/csv,text/html
// @Param        format  query  string  false  "csv (default) or html"
// @Success      200
// @Router       /api/expenses/export [get]
func (h *ExpenseHandler) ExportExpenses(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	format := c.DefaultQuery("format", service.FormatCSV)
	sendExport(c, "expenses", format, func(w io.Writer) error {
		return h.exportService.Expenses(c.Request.Context(), user, expenseFilter(c), format, w)
	})
}
