package repository

import (
	"context"
	"fmt"

	"github.com/Kusalkumar06/eventia/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegistrationRepository interface {
	Create(ctx context.Context, reg *models.Registration) error
	Find(ctx context.Context, userID, eventID string) (*models.Registration, error)
	Delete(ctx context.Context, userID, eventID string) (bool, error)
	ListByEvent(ctx context.Context, eventID string) ([]models.Registration, error)
	ListByUser(ctx context.Context, userID string) ([]models.Registration, error)
	CountByEvent(ctx context.Context, eventID string) (int64, error)
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

// Create returns ErrDuplicate when the (user, event) pair already exists.
func (r *registrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	return translate(r.db.WithContext(ctx).Create(reg).Error)
}

func (r *registrationRepository) Find(ctx context.Context, userID, eventID string) (*models.Registration, error) {
	var reg models.Registration
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&reg).Error
	if err != nil {
		return nil, translate(err)
	}
	return &reg, nil
}

func (r *registrationRepository) Delete(ctx context.Context, userID, eventID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&models.Registration{})
	if res.Error != nil {
		return false, fmt.Errorf("delete registration: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *registrationRepository) ListByEvent(ctx context.Context, eventID string) ([]models.Registration, error) {
	var regs []models.Registration
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC, id ASC").
		Find(&regs).Error
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

func (r *registrationRepository) ListByUser(ctx context.Context, userID string) ([]models.Registration, error) {
	var regs []models.Registration
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at DESC, id ASC").
		Find(&regs).Error
	if err != nil {
		return nil, fmt.Errorf("list user registrations: %w", err)
	}
	return regs, nil
}

func (r *registrationRepository) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
