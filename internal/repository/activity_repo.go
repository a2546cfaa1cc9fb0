package repository

import (
	"context"
	"fmt"

	"github.com/Kusalkumar06/eventia/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityFilter struct {
	ActorID    string
	EntityType models.EntityType
	EntityID   string
	Action     models.ActivityAction
	Limit      int
}

// ActivityRepository is append-only: there is no update or delete.
type ActivityRepository interface {
	Append(ctx context.Context, activity *models.Activity) error
	List(ctx context.Context, filter ActivityFilter) ([]models.Activity, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Append(ctx context.Context, activity *models.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	return translate(r.db.WithContext(ctx).Create(activity).Error)
}

func (r *activityRepository) List(ctx context.Context, filter ActivityFilter) ([]models.Activity, error) {
	var activities []models.Activity
	q := r.db.WithContext(ctx)
	if filter.ActorID != "" {
		q = q.Where("actor_id = ?", filter.ActorID)
	}
	if filter.EntityType != "" {
		q = q.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != "" {
		q = q.Where("entity_id = ?", filter.EntityID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Order("created_at DESC, id ASC").Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}
