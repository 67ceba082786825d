package service

import (
	"context"
	"fmt"
	"time"

	"churchadmin/internal/model"
	"churchadmin/internal/permission"
	"churchadmin/internal/repository"
	"churchadmin/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CategoryForm struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	BudgetLimit      string `json:"budget_limit"`
	RequiresApproval *bool  `json:"requires_approval"`
	IsActive         *bool  `json:"is_active"`
}

var categoryRules = map[string][]string{
	"name":         {validation.Required, "min:2", "max:100"},
	"description":  {"max:500"},
	"budget_limit": {validation.Numeric},
}

type ExpenseCategoryResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	BudgetLimit      string `json:"budget_limit"`
	RequiresApproval bool   `json:"requires_approval"`
	IsActive         bool   `json:"is_active"`
	UsageCount       int64  `json:"usage_count"`
	MonthSpent       string `json:"month_spent"`
	// empty when the category has no budget
	MonthRemaining string `json:"month_remaining"`
}

type IncomeCategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
	UsageCount  int64  `json:"usage_count"`
}

// --- Interface ---

type CategoryService interface {
	ListExpenseCategories(ctx context.Context, user model.ActingUser, activeOnly bool) ([]ExpenseCategoryResponse, error)
	CreateExpenseCategory(ctx context.Context, user model.ActingUser, form CategoryForm) (ExpenseCategoryResponse, error)
	UpdateExpenseCategory(ctx context.Context, user model.ActingUser, id string, form CategoryForm) (ExpenseCategoryResponse, error)
	DeleteExpenseCategory(ctx context.Context, user model.ActingUser, id string) error

	ListIncomeCategories(ctx context.Context, user model.ActingUser, activeOnly bool) ([]IncomeCategoryResponse, error)
	CreateIncomeCategory(ctx context.Context, user model.ActingUser, form CategoryForm) (IncomeCategoryResponse, error)
	UpdateIncomeCategory(ctx context.Context, user model.ActingUser, id string, form CategoryForm) (IncomeCategoryResponse, error)
	DeleteIncomeCategory(ctx context.Context, user model.ActingUser, id string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	incomeRepo   repository.IncomeRepository
	expenseRepo  repository.ExpenseRepository
	activityRepo repository.ActivityRepository
	txManager    repository.TransactionManager
	opts         options
}

func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	incomeRepo repository.IncomeRepository,
	expenseRepo repository.ExpenseRepository,
	activityRepo repository.ActivityRepository,
	txManager repository.TransactionManager,
	opts ...Option,
) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		incomeRepo:   incomeRepo,
		expenseRepo:  expenseRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
		opts:         buildOptions(opts),
	}
}

// --- Implementation ---

type validCategory struct {
	name        string
	description string
	budget      decimal.Decimal
}

func checkCategory(form CategoryForm) (validCategory, error) {
	res := validation.Validate(map[string]string{
		"name":         form.Name,
		"description":  form.Description,
		"budget_limit": form.BudgetLimit,
	}, categoryRules)
	errs := res.Errors

	v := validCategory{name: res.Data["name"], description: res.Data["description"], budget: decimal.Zero}
	if _, bad := errs["budget_limit"]; !bad && res.Data["budget_limit"] != "" {
		v.budget, _ = decimal.NewFromString(res.Data["budget_limit"])
		if v.budget.IsNegative() {
			errs["budget_limit"] = "Budget limit cannot be negative"
		}
		v.budget = v.budget.Round(2)
	}
	if len(errs) > 0 {
		return v, &ValidationError{Fields: errs}
	}
	return v, nil
}

func inUse(name string, count int64) error {
	return &ConflictError{Message: fmt.Sprintf("Cannot delete category %q: it is used by %d record(s).", name, count)}
}

func (s *categoryService) ListExpenseCategories(ctx context.Context, user model.ActingUser, activeOnly bool) ([]ExpenseCategoryResponse, error) {
	if !permission.Allowed(permission.ExpenseCategory, permission.View, user.Role) {
		return nil, ErrPermissionDenied
	}
	categories, err := s.categoryRepo.ListExpenseCategories(ctx, activeOnly)
	if err != nil {
		return nil, boundary("list expense categories", err)
	}

	from, to := monthBounds(s.opts.now().In(time.Local))
	res := make([]ExpenseCategoryResponse, 0, len(categories))
	for _, c := range categories {
		item, err := s.expenseCategoryResponse(ctx, c, from, to)
		if err != nil {
			return nil, boundary("list expense categories", err)
		}
		res = append(res, item)
	}
	return res, nil
}

func (s *categoryService) expenseCategoryResponse(ctx context.Context, c model.ExpenseCategory, from, to time.Time) (ExpenseCategoryResponse, error) {
	count, err := s.expenseRepo.CountByCategory(ctx, c.ID)
	if err != nil {
		return ExpenseCategoryResponse{}, fmt.Errorf("failed to count category usage: %w", err)
	}
	spent, err := s.expenseRepo.SumForCategory(ctx, c.ID, from, to, spentStatuses)
	if err != nil {
		return ExpenseCategoryResponse{}, err
	}
	item := ExpenseCategoryResponse{
		ID:               c.ID.String(),
		Name:             c.Name,
		Description:      c.Description,
		BudgetLimit:      c.BudgetLimit.StringFixed(2),
		RequiresApproval: c.RequiresApproval,
		IsActive:         c.IsActive,
		UsageCount:       count,
		MonthSpent:       spent.StringFixed(2),
	}
	if c.HasBudget() {
		item.MonthRemaining = c.BudgetLimit.Sub(spent).StringFixed(2)
	}
	return item, nil
}

func (s *categoryService) CreateExpenseCategory(ctx context.Context, user model.ActingUser, form CategoryForm) (ExpenseCategoryResponse, error) {
	if !permission.Allowed(permission.ExpenseCategory, permission.Manage, user.Role) {
		return ExpenseCategoryResponse{}, ErrPermissionDenied
	}
	v, err := checkCategory(form)
	if err != nil {
		return ExpenseCategoryResponse{}, err
	}

	c := model.ExpenseCategory{
		Name:             v.name,
		Description:      v.description,
		BudgetLimit:      v.budget,
		RequiresApproval: true,
		IsActive:         true,
	}
	if form.RequiresApproval != nil {
		c.RequiresApproval = *form.RequiresApproval
	}
	if form.IsActive != nil {
		c.IsActive = *form.IsActive
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.categoryRepo.CreateExpenseCategory(txCtx, &c); err != nil {
			return err
		}
		return recordActivity(txCtx, s.activityRepo, user, model.ActionCreateCategory, model.TableExpenseCategories,
			c.ID.String(), fmt.Sprintf("Created expense category %s", c.Name), nil, c)
	})
	if err != nil {
		return ExpenseCategoryResponse{}, boundary("create expense category", err)
	}

	return ExpenseCategoryResponse{
		ID:               c.ID.String(),
		Name:             c.Name,
		Description:      c.Description,
		BudgetLimit:      c.BudgetLimit.StringFixed(2),
		RequiresApproval: c.RequiresApproval,
		IsActive:         c.IsActive,
		MonthSpent:       "0.00",
		MonthRemaining:   remainingText(c.HasBudget(), c.BudgetLimit),
	}, nil
}

func remainingText(hasBudget bool, d decimal.Decimal) string {
	if !hasBudget {
		return ""
	}
	return d.StringFixed(2)
}

func (s *categoryService) UpdateExpenseCategory(ctx context.Context, user model.ActingUser, id string, form CategoryForm) (ExpenseCategoryResponse, error) {
	if !permission.Allowed(permission.ExpenseCategory, permission.Manage, user.Role) {
		return ExpenseCategoryResponse{}, ErrPermissionDenied
	}
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return ExpenseCategoryResponse{}, ErrNotFound
	}
	v, err := checkCategory(form)
	if err != nil {
		return ExpenseCategoryResponse{}, err
	}

	var c *model.ExpenseCategory
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		c, err = s.categoryRepo.FindExpenseCategory(txCtx, categoryID)
		if err != nil {
			return err
		}
		old := *c
		c.Name = v.name
		c.Description = v.description
		c.BudgetLimit = v.budget
		if form.RequiresApproval != nil {
			c.RequiresApproval = *form.RequiresApproval
		}
		if form.IsActive != nil {
			c.IsActive = *form.IsActive
		}
		if err := s.categoryRepo.UpdateExpenseCategory(txCtx, c); err != nil {
			return err
		}
		return recordActivity(txCtx, s.activityRepo, user, model.ActionUpdateCategory, model.TableExpenseCategories,
			c.ID.String(), fmt.Sprintf("Updated expense category %s", c.Name), old, c)
	})
	if err != nil {
		return ExpenseCategoryResponse{}, boundary("update expense category", err)
	}

	from, to := monthBounds(s.opts.now().In(time.Local))
	res, err := s.expenseCategoryResponse(ctx, *c, from, to)
	if err != nil {
		return ExpenseCategoryResponse{}, boundary("load expense category", err)
	}
	return res, nil
}

// DeleteExpenseCategory refuses while any expense references the category
func (s *categoryService) DeleteExpenseCategory(ctx context.Context, user model.ActingUser, id string) error {
	if !permission.Allowed(permission.ExpenseCategory, permission.Delete, user.Role) {
		return ErrPermissionDenied
	}
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		c, err := s.categoryRepo.FindExpenseCategory(txCtx, categoryID)
		if err != nil {
			return err
		}
		count, err := s.expenseRepo.CountByCategory(txCtx, categoryID)
		if err != nil {
			return err
		}
		if count > 0 {
			return inUse(c.Name, count)
		}
		if err := s.categoryRepo.DeleteExpenseCategory(txCtx, categoryID); err != nil {
			return err
		}
		return recordActivity(txCtx, s.activityRepo, user, model.ActionDeleteCategory, model.TableExpenseCategories,
			c.ID.String(), fmt.Sprintf("Deleted expense category %s", c.Name), c, nil)
	})
	return boundary("delete expense category", err)
}

func (s *categoryService) ListIncomeCategories(ctx context.Context, user model.ActingUser, activeOnly bool) ([]IncomeCategoryResponse, error) {
	if !permission.Allowed(permission.IncomeCategory, permission.View, user.Role) {
		return nil, ErrPermissionDenied
	}
	categories, err := s.categoryRepo.ListIncomeCategories(ctx, activeOnly)
	if err != nil {
		return nil, boundary("list income categories", err)
	}
	res := make([]IncomeCategoryResponse, 0, len(categories))
	for _, c := range categories {
		count, err := s.incomeRepo.CountByCategory(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count category usage: %w", err)
		}
		res = append(res, toIncomeCategoryResponse(c, count))
	}
	return res, nil
}

func toIncomeCategoryResponse(c model.IncomeCategory, count int64) IncomeCategoryResponse {
	return IncomeCategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		UsageCount:  count,
	}
}

func (s *categoryService) CreateIncomeCategory(ctx context.Context, user model.ActingUser, form CategoryForm) (IncomeCategoryResponse, error) {
	if !permission.Allowed(permission.IncomeCategory, permission.Manage, user.Role) {
		return IncomeCategoryResponse{}, ErrPermissionDenied
	}
	v, err := checkCategory(form)
	if err != nil {
		return IncomeCategoryResponse{}, err
	}

	c := model.IncomeCategory{Name: v.name, Description: v.description, IsActive: true}
	if form.IsActive != nil {
		c.IsActive = *form.IsActive
	}
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.categoryRepo.CreateIncomeCategory(txCtx, &c); err != nil {
			return err
		}
		return recordActivity(txCtx, s.activityRepo, user, model.ActionCreateCategory, model.TableIncomeCategories,
			c.ID.String(), fmt.Sprintf("Created income category %s", c.Name), nil, c)
	})
	if err != nil {
		return IncomeCategoryResponse{}, boundary("create income category", err)
	}
	return toIncomeCategoryResponse(c, 0), nil
}

func (s *categoryService) UpdateIncomeCategory(ctx context.Context, user model.ActingUser, id string, form CategoryForm) (IncomeCategoryResponse, error) {
	if !permission.Allowed(permission.IncomeCategory, permission.Manage, user.Role) {
		return IncomeCategoryResponse{}, ErrPermissionDenied
	}
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return IncomeCategoryResponse{}, ErrNotFound
	}
	v, err := checkCategory(form)
	if err != nil {
		return IncomeCategoryResponse{}, err
	}

	var c *model.IncomeCategory
	var count int64
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		c, err = s.categoryRepo.FindIncomeCategory(txCtx, categoryID)
		if err != nil {
			return err
		}
		old := *c
		c.Name = v.name
		c.Description = v.description
		if form.IsActive != nil {
			c.IsActive = *form.IsActive
		}
		if err := s.categoryRepo.UpdateIncomeCategory(txCtx, c); err != nil {
			return err
		}
		if count, err = s.incomeRepo.CountByCategory(txCtx, c.ID); err != nil {
			return err
		}
		return recordActivity(txCtx, s.activityRepo, user, model.ActionUpdateCategory, model.TableIncomeCategories,
			c.ID.String(), fmt.Sprintf("Updated income category %s", c.Name), old, c)
	})
	if err != nil {
		return IncomeCategoryResponse{}, boundary("update income category", err)
	}
	return toIncomeCategoryResponse(*c, count), nil
}

// DeleteIncomeCategory refuses while any income record references the category
func (s *categoryService) DeleteIncomeCategory(ctx context.Context, user model.ActingUser, id string) error {
	if !permission.Allowed(permission.IncomeCategory, permission.Delete, user.Role) {
		return ErrPermissionDenied
	}
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		c, err := s.categoryRepo.FindIncomeCategory(txCtx, categoryID)
		if err != nil {
			return err
		}
		count, err := s.incomeRepo.CountByCategory(txCtx, categoryID)
		if err != nil {
			return err
		}
		if count > 0 {
			return inUse(c.Name, count)
		}
		if err := s.categoryRepo.DeleteIncomeCategory(txCtx, categoryID); err != nil {
			return err
		}
		return recordActivity(txCtx, s.activityRepo, user, model.ActionDeleteCategory, model.TableIncomeCategories,
			c.ID.String(), fmt.Sprintf("Deleted income category %s", c.Name), c, nil)
	})
	return boundary("delete income category", err)
}
