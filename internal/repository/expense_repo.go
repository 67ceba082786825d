package repository

import (
	"context"
	"fmt"
	"time"

	"churchadmin/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var expenseSearchColumns = []string{"transaction_id", "vendor_name", "description", "reference_number"}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.ExpenseRecord) error
	Update(ctx context.Context, expense *model.ExpenseRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ExpenseRecord, error)
	// LockByID loads the record with FOR UPDATE; only meaningful inside RunInTx
	LockByID(ctx context.Context, id uuid.UUID) (*model.ExpenseRecord, error)
	ReferenceExists(ctx context.Context, reference string, excludeID *uuid.UUID) (bool, error)
	List(ctx context.Context, filter RecordFilter) ([]model.ExpenseRecord, int64, error)
	// SumForCategory totals amounts of one category with expense_date in [from, to)
	SumForCategory(ctx context.Context, categoryID uuid.UUID, from, to time.Time, statuses []string) (decimal.Decimal, error)
	SumByStatus(ctx context.Context, status string) (decimal.Decimal, int64, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type expenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *model.ExpenseRecord) error {
	return translate(GetDB(ctx, r.db).Omit(clause.Associations).Create(expense).Error)
}

func (r *expenseRepository) Update(ctx context.Context, expense *model.ExpenseRecord) error {
	return translate(GetDB(ctx, r.db).Omit(clause.Associations).Save(expense).Error)
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := GetDB(ctx, r.db).Delete(&model.ExpenseRecord{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *expenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ExpenseRecord, error) {
	var expense model.ExpenseRecord
	if err := GetDB(ctx, r.db).Preload("Category").First(&expense, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &expense, nil
}

func (r *expenseRepository) LockByID(ctx context.Context, id uuid.UUID) (*model.ExpenseRecord, error) {
	var expense model.ExpenseRecord
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&expense, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &expense, nil
}

func (r *expenseRepository) ReferenceExists(ctx context.Context, reference string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	q := GetDB(ctx, r.db).Model(&model.ExpenseRecord{}).Where("reference_number = ?", reference)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check expense reference: %w", err)
	}
	return count > 0, nil
}

func (r *expenseRepository) List(ctx context.Context, filter RecordFilter) ([]model.ExpenseRecord, int64, error) {
	var expenses []model.ExpenseRecord
	var total int64

	db := GetDB(ctx, r.db)
	if err := filter.apply(db.Model(&model.ExpenseRecord{}), "expense_date", expenseSearchColumns).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	q := filter.apply(db.Preload("Category"), "expense_date", expenseSearchColumns).
		Order("expense_date DESC, created_at DESC").
		Offset(filter.Offset())
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Find(&expenses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch expenses: %w", err)
	}

	return expenses, total, nil
}

func (r *expenseRepository) SumForCategory(ctx context.Context, categoryID uuid.UUID, from, to time.Time, statuses []string) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := GetDB(ctx, r.db).Model(&model.ExpenseRecord{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("category_id = ? AND status IN ? AND expense_date >= ? AND expense_date < ?",
			categoryID, statuses, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum category spending: %w", err)
	}
	return result.Total, nil
}

func (r *expenseRepository) SumByStatus(ctx context.Context, status string) (decimal.Decimal, int64, error) {
	var result struct {
		Total decimal.Decimal
		Count int64
	}
	if err := GetDB(ctx, r.db).Model(&model.ExpenseRecord{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("status = ?", status).
		Scan(&result).Error; err != nil {
		return decimal.Zero, 0, fmt.Errorf("failed to sum expenses by status: %w", err)
	}
	return result.Total, result.Count, nil
}

func (r *expenseRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.ExpenseRecord{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

func (r *expenseRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.ExpenseRecord{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
