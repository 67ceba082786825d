package handler

import (
	"net/http"

	"churchadmin/internal/middleware"
	"churchadmin/internal/permission"
	"churchadmin/internal/service"
	"churchadmin/pkg/pagination"
	"churchadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activityService service.ActivityService
}

func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/activity-logs")
	group.Use(middleware.RequirePermission(permission.Activity, permission.View))
	{
		group.GET("", h.GetActivityLogs)
	}
}

// GetActivityLogs pages through the finance activity trail, newest first
// @Summary      Get activity logs
// @Tags         activity
// @Security     BearerAuth
// @Produce      json
// @Param        user_id       query     string  false  "Acting user id"
// @Param        entity_table  query     string  false  "income_records, expense_records, ..."
// @Param        entity_id     query     string  false  "Record id"
// @Param        action        query     string  false  "e.g. APPROVE_EXPENSE"
// @Param        page          query     int     false  "Page number (default 1)"
// @Param        limit         query     int     false  "Number of items per page (default 20)"
// @Success      200           {object}  response.Response{data=response.Page}
// @Router       /api/activity-logs [get]
func (h *ActivityHandler) GetActivityLogs(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	p := pagination.Parse(c)
	logs, total, err := h.activityService.List(c.Request.Context(), user, service.ActivityFilter{
		UserID:      c.Query("user_id"),
		EntityTable: c.Query("entity_table"),
		EntityID:    c.Query("entity_id"),
		Action:      c.Query("action"),
		Page:        p.Page,
		Limit:       p.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, p.Wrap(logs, total)))
}
