package repository

import (
	"context"
	"fmt"

	"github.com/Kusalkumar06/eventia/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
	SetOrganizerRequest(ctx context.Context, id string, from []models.OrganizerRequestStatus, to models.OrganizerRequestStatus, role *models.Role) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	return users, nil
}

// SetOrganizerRequest moves the request status (and optionally the role)
// only while the current status is one of from.
func (r *userRepository) SetOrganizerRequest(ctx context.Context, id string, from []models.OrganizerRequestStatus, to models.OrganizerRequestStatus, role *models.Role) (bool, error) {
	fields := map[string]any{"organizer_request": to}
	if role != nil {
		fields["role"] = *role
	}
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND organizer_request IN ?", id, from).
		Updates(fields)
	if res.Error != nil {
		return false, fmt.Errorf("update organizer request: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}
