package service

import (
	"context"

	"churchadmin/internal/model"
	"churchadmin/internal/permission"
	"churchadmin/internal/repository"

	"github.com/google/uuid"
)

type ActivityLogResponse struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Action      string      `json:"action"`
	Description string      `json:"description"`
	EntityTable string      `json:"entity_table"`
	EntityID    string      `json:"entity_id"`
	OldValue    interface{} `json:"old_value,omitempty"`
	NewValue    interface{} `json:"new_value,omitempty"`
	CreatedAt   string      `json:"created_at"`
}

type ActivityFilter struct {
	UserID      string
	EntityTable string
	EntityID    string
	Action      string
	Page        int
	Limit       int
}

type ActivityService interface {
	List(ctx context.Context, user model.ActingUser, filter ActivityFilter) ([]ActivityLogResponse, int64, error)
}

type activityService struct {
	repo repository.ActivityRepository
}

func NewActivityService(repo repository.ActivityRepository) ActivityService {
	return &activityService{repo: repo}
}

func (s *activityService) List(ctx context.Context, user model.ActingUser, filter ActivityFilter) ([]ActivityLogResponse, int64, error) {
	if !permission.Allowed(permission.Activity, permission.View, user.Role) {
		return nil, 0, ErrPermissionDenied
	}

	rf := repository.ActivityFilter{
		EntityTable: filter.EntityTable,
		EntityID:    filter.EntityID,
		Action:      filter.Action,
		Page:        filter.Page,
		Limit:       filter.Limit,
	}
	if filter.UserID != "" {
		uid, err := uuid.Parse(filter.UserID)
		if err != nil {
			return nil, 0, fieldError("user_id", "User is invalid")
		}
		rf.UserID = &uid
	}

	logs, total, err := s.repo.List(ctx, rf)
	if err != nil {
		return nil, 0, boundary("list activity", err)
	}

	res := make([]ActivityLogResponse, 0, len(logs))
	for _, l := range logs {
		userID := ""
		if l.UserID != nil {
			userID = l.UserID.String()
		}
		item := ActivityLogResponse{
			ID:          l.ID.String(),
			UserID:      userID,
			Action:      l.Action,
			Description: l.Description,
			EntityTable: l.EntityTable,
			EntityID:    l.EntityID,
			CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if len(l.OldValue) > 0 {
			item.OldValue = l.OldValue
		}
		if len(l.NewValue) > 0 {
			item.NewValue = l.NewValue
		}
		res = append(res, item)
	}

	return res, total, nil
}
