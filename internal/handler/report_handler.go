package handler

import (
	"net/http"
	"strconv"

	"churchadmin/internal/middleware"
	"churchadmin/internal/permission"
	"churchadmin/internal/service"
	"churchadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports")
	reports.Use(middleware.RequirePermission(permission.Report, permission.View))
	{
		reports.GET("/dashboard", h.GetDashboard)
		reports.GET("/category-totals", h.GetCategoryTotals)
		reports.GET("/monthly-trend", h.GetMonthlyTrend)
		reports.GET("/top-donors", h.GetTopDonors)
	}
}

func reportPeriod(c *gin.Context) service.ReportPeriod {
	return service.ReportPeriod{From: c.Query("from"), To: c.Query("to")}
}

// GetDashboard summarises the current month
// @Summary      Finance dashboard
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.DashboardSummary}
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	res, err := h.reportService.Dashboard(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// GetCategoryTotals breaks verified income or paid expenses down by category
// @Summary      Totals per category
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        kind  query     string  true   "income or expense"
// @Param        from  query     string  false  "YYYY-MM-DD, default first day of this month"
// @Param        to    query     string  false  "YYYY-MM-DD, default today"
// @Success      200   {object}  response.Response{data=[]model.CategoryTotal}
// @Failure      422   {object}  response.Response
// @Router       /api/reports/category-totals [get]
func (h *ReportHandler) GetCategoryTotals(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	res, err := h.reportService.CategoryTotals(c.Request.Context(), user, c.Query("kind"), reportPeriod(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// GetMonthlyTrend
// @Summary      Income vs expense per month
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        from  query     string  false  "YYYY-MM-DD"
// @Param        to    query     string  false  "YYYY-MM-DD"
// @Success      200   {object}  response.Response{data=[]model.TrendPoint}
// @Router       /api/reports/monthly-trend [get]
func (h *ReportHandler) GetMonthlyTrend(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	res, err := h.reportService.MonthlyTrend(c.Request.Context(), user, reportPeriod(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// GetTopDonors
// @Summary      Largest named donors
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        from   query     string  false  "YYYY-MM-DD"
// @Param        to     query     string  false  "YYYY-MM-DD"
// @Param        limit  query     int     false  "Default 10, max 50"
// @Success      200    {object}  response.Response{data=[]model.DonorRanking}
// @Router       /api/reports/top-donors [get]
func (h *ReportHandler) GetTopDonors(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	res, err := h.reportService.TopDonors(c.Request.Context(), user, reportPeriod(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}
