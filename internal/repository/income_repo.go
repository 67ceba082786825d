package repository

import (
	"context"
	"fmt"

	"churchadmin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var incomeSearchColumns = []string{"transaction_id", "donor_name", "description", "reference_number"}

type IncomeRepository interface {
	Create(ctx context.Context, record *model.IncomeRecord) error
	Update(ctx context.Context, record *model.IncomeRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.IncomeRecord, error)
	// LockByID loads the record with FOR UPDATE; only meaningful inside RunInTx
	LockByID(ctx context.Context, id uuid.UUID) (*model.IncomeRecord, error)
	ReferenceExists(ctx context.Context, reference string, excludeID *uuid.UUID) (bool, error)
	List(ctx context.Context, filter RecordFilter) ([]model.IncomeRecord, int64, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type incomeRepository struct {
	db *gorm.DB
}

func NewIncomeRepository(db *gorm.DB) IncomeRepository {
	return &incomeRepository{db: db}
}

func (r *incomeRepository) Create(ctx context.Context, record *model.IncomeRecord) error {
	return translate(GetDB(ctx, r.db).Omit(clause.Associations).Create(record).Error)
}

func (r *incomeRepository) Update(ctx context.Context, record *model.IncomeRecord) error {
	return translate(GetDB(ctx, r.db).Omit(clause.Associations).Save(record).Error)
}

func (r *incomeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := GetDB(ctx, r.db).Delete(&model.IncomeRecord{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *incomeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.IncomeRecord, error) {
	var record model.IncomeRecord
	if err := GetDB(ctx, r.db).Preload("Category").First(&record, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (r *incomeRepository) LockByID(ctx context.Context, id uuid.UUID) (*model.IncomeRecord, error) {
	var record model.IncomeRecord
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&record, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (r *incomeRepository) ReferenceExists(ctx context.Context, reference string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	q := GetDB(ctx, r.db).Model(&model.IncomeRecord{}).Where("reference_number = ?", reference)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check income reference: %w", err)
	}
	return count > 0, nil
}

func (r *incomeRepository) List(ctx context.Context, filter RecordFilter) ([]model.IncomeRecord, int64, error) {
	var records []model.IncomeRecord
	var total int64

	db := GetDB(ctx, r.db)
	if err := filter.apply(db.Model(&model.IncomeRecord{}), "transaction_date", incomeSearchColumns).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count income records: %w", err)
	}

	q := filter.apply(db.Preload("Category"), "transaction_date", incomeSearchColumns).
		Order("transaction_date DESC, created_at DESC").
		Offset(filter.Offset())
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch income records: %w", err)
	}

	return records, total, nil
}

func (r *incomeRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.IncomeRecord{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

func (r *incomeRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.IncomeRecord{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
