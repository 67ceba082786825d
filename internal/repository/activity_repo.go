package repository

import (
	"context"
	"fmt"

	"churchadmin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityFilter narrows the activity trail. Zero values mean "any".
type ActivityFilter struct {
	UserID      *uuid.UUID
	EntityTable string
	EntityID    string
	Action      string
	Page        int
	Limit       int
}

type ActivityRepository interface {
	Log(ctx context.Context, entry *model.ActivityLog) error
	List(ctx context.Context, filter ActivityFilter) ([]model.ActivityLog, int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Log(ctx context.Context, entry *model.ActivityLog) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *activityRepository) List(ctx context.Context, filter ActivityFilter) ([]model.ActivityLog, int64, error) {
	var logs []model.ActivityLog
	var total int64

	scope := func(q *gorm.DB) *gorm.DB {
		if filter.UserID != nil {
			q = q.Where("user_id = ?", *filter.UserID)
		}
		if filter.EntityTable != "" {
			q = q.Where("entity_table = ?", filter.EntityTable)
		}
		if filter.EntityID != "" {
			q = q.Where("entity_id = ?", filter.EntityID)
		}
		if filter.Action != "" {
			q = q.Where("action = ?", filter.Action)
		}
		return q
	}

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.ActivityLog{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count activity: %w", err)
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if err := db.Scopes(scope).Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch activity: %w", err)
	}

	return logs, total, nil
}
