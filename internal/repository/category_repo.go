package repository

import (
	"context"
	"fmt"

	"churchadmin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	ListExpenseCategories(ctx context.Context, activeOnly bool) ([]model.ExpenseCategory, error)
	FindExpenseCategory(ctx context.Context, id uuid.UUID) (*model.ExpenseCategory, error)
	CreateExpenseCategory(ctx context.Context, c *model.ExpenseCategory) error
	UpdateExpenseCategory(ctx context.Context, c *model.ExpenseCategory) error
	DeleteExpenseCategory(ctx context.Context, id uuid.UUID) error

	ListIncomeCategories(ctx context.Context, activeOnly bool) ([]model.IncomeCategory, error)
	FindIncomeCategory(ctx context.Context, id uuid.UUID) (*model.IncomeCategory, error)
	CreateIncomeCategory(ctx context.Context, c *model.IncomeCategory) error
	UpdateIncomeCategory(ctx context.Context, c *model.IncomeCategory) error
	DeleteIncomeCategory(ctx context.Context, id uuid.UUID) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) ListExpenseCategories(ctx context.Context, activeOnly bool) ([]model.ExpenseCategory, error) {
	var categories []model.ExpenseCategory
	q := GetDB(ctx, r.db).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch expense categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) FindExpenseCategory(ctx context.Context, id uuid.UUID) (*model.ExpenseCategory, error) {
	var c model.ExpenseCategory
	if err := GetDB(ctx, r.db).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *categoryRepository) CreateExpenseCategory(ctx context.Context, c *model.ExpenseCategory) error {
	return translate(GetDB(ctx, r.db).Create(c).Error)
}

func (r *categoryRepository) UpdateExpenseCategory(ctx context.Context, c *model.ExpenseCategory) error {
	return translate(GetDB(ctx, r.db).Save(c).Error)
}

func (r *categoryRepository) DeleteExpenseCategory(ctx context.Context, id uuid.UUID) error {
	res := GetDB(ctx, r.db).Delete(&model.ExpenseCategory{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *categoryRepository) ListIncomeCategories(ctx context.Context, activeOnly bool) ([]model.IncomeCategory, error) {
	var categories []model.IncomeCategory
	q := GetDB(ctx, r.db).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch income categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) FindIncomeCategory(ctx context.Context, id uuid.UUID) (*model.IncomeCategory, error) {
	var c model.IncomeCategory
	if err := GetDB(ctx, r.db).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *categoryRepository) CreateIncomeCategory(ctx context.Context, c *model.IncomeCategory) error {
	return translate(GetDB(ctx, r.db).Create(c).Error)
}

func (r *categoryRepository) UpdateIncomeCategory(ctx context.Context, c *model.IncomeCategory) error {
	return translate(GetDB(ctx, r.db).Save(c).Error)
}

func (r *categoryRepository) DeleteIncomeCategory(ctx context.Context, id uuid.UUID) error {
	res := GetDB(ctx, r.db).Delete(&model.IncomeCategory{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
