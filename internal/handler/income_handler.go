package handler

import (
	"io"
	"net/http"

	"churchadmin/internal/middleware"
	"churchadmin/internal/model"
	"churchadmin/internal/permission"
	"churchadmin/internal/service"
	"churchadmin/pkg/pagination"
	"churchadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

type IncomeHandler struct {
	incomeService service.IncomeService
	exportService service.ExportService
}

func NewIncomeHandler(incomeService service.IncomeService, exportService service.ExportService) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService, exportService: exportService}
}

// RegisterRoutes expects a group already behind middleware.RequireAuth
func (h *IncomeHandler) RegisterRoutes(router *gin.RouterGroup) {
	incomes := router.Group("/incomes")
	{
		incomes.GET("", middleware.RequirePermission(permission.Income, permission.View), h.ListIncomes)
		incomes.POST("", middleware.RequirePermission(permission.Income, permission.Create), h.SubmitIncome)
		incomes.GET("/export", middleware.RequirePermission(permission.Report, permission.Export), h.ExportIncomes)
		incomes.GET("/:id", middleware.RequirePermission(permission.Income, permission.View), h.GetIncome)
		incomes.PUT("/:id", middleware.RequirePermission(permission.Income, permission.Update), h.UpdateIncome)
		incomes.PUT("/:id/verify", middleware.RequirePermission(permission.Income, permission.Verify), h.VerifyIncome)
		incomes.PUT("/:id/reject", middleware.RequirePermission(permission.Income, permission.Reject), h.RejectIncome)
		incomes.DELETE("/:id", middleware.RequirePermission(permission.Income, permission.Delete), h.DeleteIncome)
	}
}

func incomeFilter(c *gin.Context) service.IncomeFilter {
	p := pagination.Parse(c)
	return service.IncomeFilter{
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

// ListIncomes returns a filtered page of income records
// @Summary      List income records
// @Tags         incomes
// @Security     BearerAuth
// @Produce      json
// @Param        status          query  string  false  "pending, verified or rejected"
// @Param        category_id     query  string  false  "Income category id"
// @Param        payment_method  query  string  false  "Payment method"
// @Param        date_from       query  string  false  "YYYY-MM-DD"
// @Param        date_to         query  string  false  "YYYY-MM-DD"
// @Param        search          query  string  false  "Transaction id, donor, description or reference"
// @Param        page            query  int     false  "Page number (default 1)"
// @Param        limit           query  int     false  "Items per page (default 20)"
// @Success      200  {object}  response.Response{data=response.Page}
// @Failure      422  {object}  response.Response
// @Router       /api/incomes [get]
func (h *IncomeHandler) ListIncomes(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	p := pagination.Parse(c)
	items, total, err := h.incomeService.List(c.Request.Context(), user, incomeFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, p.Wrap(items, total)))
}

// SubmitIncome records a gift; leaders' submissions are verified immediately
// @Summary      Submit an income record
// @Tags         incomes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.IncomeForm  true  "Income details"
// @Success      201      {object}  response.Response{data=service.IncomeResponse}
// @Failure      422      {object}  response.Response
// @Router       /api/incomes [post]
func (h *IncomeHandler) SubmitIncome(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	var form service.IncomeForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.incomeService.Submit(c.Request.Context(), user, form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, res))
}

// GetIncome
// @Summary      Get an income record
// @Tags         incomes
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Income id"
// @Success      200  {object}  response.Response{data=service.IncomeResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/incomes/{id} [get]
func (h *IncomeHandler) GetIncome(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	res, err := h.incomeService.Get(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// UpdateIncome
// @Summary      Edit an income record
// @Tags         incomes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string              true  "Income id"
// @Param        request  body      service.IncomeForm  true  "Income details"
// @Success      200      {object}  response.Response{data=service.IncomeResponse}
// @Failure      409      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/incomes/{id} [put]
func (h *IncomeHandler) UpdateIncome(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	var form service.IncomeForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.incomeService.Update(c.Request.Context(), user, c.Param("id"), form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// VerifyIncome
// @Summary      Verify a pending income record
// @Tags         incomes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true   "Income id"
// @Param        request  body      service.DecisionRequest  false  "Optional note"
// @Success      200      {object}  response.Response{data=service.IncomeResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/incomes/{id}/verify [put]
func (h *IncomeHandler) VerifyIncome(c *gin.Context) {
	h.decide(c, model.IncomeVerified)
}

// RejectIncome
// @Summary      Reject a pending income record
// @Tags         incomes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true   "Income id"
// @Param        request  body      service.DecisionRequest  false  "Optional note"
// @Success      200      {object}  response.Response{data=service.IncomeResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/incomes/{id}/reject [put]
func (h *IncomeHandler) RejectIncome(c *gin.Context) {
	h.decide(c, model.IncomeRejected)
}

func (h *IncomeHandler) decide(c *gin.Context, decision string) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	var req service.DecisionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	res, err := h.incomeService.Decide(c.Request.Context(), user, c.Param("id"), decision, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// DeleteIncome
// @Summary      Delete an income record
// @Tags         incomes
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Income id"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/incomes/{id} [delete]
func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	if err := h.incomeService.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Income record deleted"}))
}

// ExportIncomes downloads the filtered records as CSV or a printable page
// @Summary      Export income records
// @Tags         incomes
// @Security     BearerAuth
// @Produce      text/csv,text/html
// @Param        format  query  string  false  "csv (default) or html"
// @Success      200
// @Failure      422  {object}  response.Response
// @Router       /api/incomes/export [get]
func (h *IncomeHandler) ExportIncomes(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	format := c.DefaultQuery("format", service.FormatCSV)
	sendExport(c, "incomes", format, func(w io.Writer) error {
		return h.exportService.Incomes(c.Request.Context(), user, incomeFilter(c), format, w)
	})
}
