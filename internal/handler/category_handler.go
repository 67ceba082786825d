package handler

import (
	"net/http"

	"churchadmin/internal/middleware"
	"churchadmin/internal/permission"
	"churchadmin/internal/service"
	"churchadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	expense := router.Group("/expense-categories")
	{
		expense.GET("", middleware.RequirePermission(permission.ExpenseCategory, permission.View), h.ListExpenseCategories)
		expense.POST("", middleware.RequirePermission(permission.ExpenseCategory, permission.Manage), h.CreateExpenseCategory)
		expense.PUT("/:id", middleware.RequirePermission(permission.ExpenseCategory, permission.Manage), h.UpdateExpenseCategory)
		expense.DELETE("/:id", middleware.RequirePermission(permission.ExpenseCategory, permission.Delete), h.DeleteExpenseCategory)
	}
	income := router.Group("/income-categories")
	{
		income.GET("", middleware.RequirePermission(permission.IncomeCategory, permission.View), h.ListIncomeCategories)
		income.POST("", middleware.RequirePermission(permission.IncomeCategory, permission.Manage), h.CreateIncomeCategory)
		income.PUT("/:id", middleware.RequirePermission(permission.IncomeCategory, permission.Manage), h.UpdateIncomeCategory)
		income.DELETE("/:id", middleware.RequirePermission(permission.IncomeCategory, permission.Delete), h.DeleteIncomeCategory)
	}
}

// activeOnly is true unless ?all=true
func activeOnly(c *gin.Context) bool {
	return c.Query("all") != "true"
}

// ListExpenseCategories returns categories with this month's budget usage
// @Summary      List expense categories
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        all  query     bool  false  "Include inactive categories"
// @Success      200  {object}  response.Response{data=[]service.ExpenseCategoryResponse}
// @Router       /api/expense-categories [get]
func (h *CategoryHandler) ListExpenseCategories(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	res, err := h.categoryService.ListExpenseCategories(c.Request.Context(), user, activeOnly(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// CreateExpenseCategory
// @Summary      Create an expense category
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.CategoryForm  true  "Category"
// @Success      201      {object}  response.Response{data=service.ExpenseCategoryResponse}
// @Failure      422      {object}  response.Response
// @Router       /api/expense-categories [post]
func (h *CategoryHandler) CreateExpenseCategory(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	var form service.CategoryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.categoryService.CreateExpenseCategory(c.Request.Context(), user, form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, res))
}

// UpdateExpenseCategory
// @Summary      Update an expense category
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Category id"
// @Param        request  body      service.CategoryForm  true  "Category"
// @Success      200      {object}  response.Response{data=service.ExpenseCategoryResponse}
// @Router       /api/expense-categories/{id} [put]
func (h *CategoryHandler) UpdateExpenseCategory(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	var form service.CategoryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.categoryService.UpdateExpenseCategory(c.Request.Context(), user, c.Param("id"), form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// DeleteExpenseCategory refuses with 409 while expenses reference the category
// @Summary      Delete an expense category
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Category id"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/expense-categories/{id} [delete]
func (h *CategoryHandler) DeleteExpenseCategory(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	if err := h.categoryService.DeleteExpenseCategory(c.Request.Context(), user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Category deleted"}))
}

// @Summary      List income categories
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        all  query     bool  false  "Include inactive categories"
// @Success      200  {object}  response.Response{data=[]service.IncomeCategoryResponse}
// @Router       /api/income-categories [get]
func (h *CategoryHandler) ListIncomeCategories(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	res, err := h.categoryService.ListIncomeCategories(c.Request.Context(), user, activeOnly(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// @Summary      Create an income category
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.CategoryForm  true  "Category"
// @Success      201      {object}  response.Response{data=service.IncomeCategoryResponse}
// @Router       /api/income-categories [post]
func (h *CategoryHandler) CreateIncomeCategory(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	var form service.CategoryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.categoryService.CreateIncomeCategory(c.Request.Context(), user, form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, res))
}

// @Summary      Update an income category
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Category id"
// @Param        request  body      service.CategoryForm  true  "Category"
// @Success      200      {object}  response.Response{data=service.IncomeCategoryResponse}
// @Router       /api/income-categories/{id} [put]
func (h *CategoryHandler) UpdateIncomeCategory(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	var form service.CategoryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.categoryService.UpdateIncomeCategory(c.Request.Context(), user, c.Param("id"), form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// @Summary      Delete an income category
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Category id"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/income-categories/{id} [delete]
func (h *CategoryHandler) DeleteIncomeCategory(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}
	if err := h.categoryService.DeleteIncomeCategory(c.Request.Context(), user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Category deleted"}))
}
