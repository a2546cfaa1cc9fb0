package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Kusalkumar06/eventia/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventFilter struct {
	OrganizerID string
	Statuses    []models.EventStatus
	Upcoming    bool
	Limit       int
	Offset      int
}

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id string) (*models.Event, error)
	FindBySlug(ctx context.Context, slug string) (*models.Event, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, filter EventFilter) ([]models.Event, error)
	UpdateFields(ctx context.Context, id string, expected models.EventStatus, maxRegistrations *int, fields map[string]any) (bool, error)
	TransitionStatus(ctx context.Context, id string, from []models.EventStatus, to models.EventStatus, rejectionReason *string) (bool, error)
	DeleteInStatus(ctx context.Context, id string, statuses []models.EventStatus) (bool, error)
	IncrementRegistrations(ctx context.Context, id, registrantID string, now time.Time) (bool, error)
	DecrementRegistrations(ctx context.Context, id string) (bool, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	return translate(r.db.WithContext(ctx).Create(event).Error)
}

func (r *eventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

func (r *eventRepository) FindBySlug(ctx context.Context, slug string) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&event).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

func (r *eventRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return count > 0, nil
}

func (r *eventRepository) List(ctx context.Context, filter EventFilter) ([]models.Event, error) {
	var events []models.Event
	q := r.db.WithContext(ctx)
	if filter.OrganizerID != "" {
		q = q.Where("organizer_id = ?", filter.OrganizerID)
	}
	if len(filter.Statuses) > 0 {
		q = q.Where("status IN ?", filter.Statuses)
	}
	if filter.Upcoming {
		q = q.Where("end_date > ?", time.Now().UTC())
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if err := q.Order("start_date ASC, id ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// UpdateFields writes fields only while the event is still in the expected
// status and the live counter fits under maxRegistrations.
func (r *eventRepository) UpdateFields(ctx context.Context, id string, expected models.EventStatus, maxRegistrations *int, fields map[string]any) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ? AND status = ?", id, expected)
	if maxRegistrations != nil {
		q = q.Where("registrations_count <= ?", *maxRegistrations)
	}
	res := q.Updates(fields)
	if res.Error != nil {
		return false, fmt.Errorf("update event: %w", translate(res.Error))
	}
	return res.RowsAffected == 1, nil
}

// TransitionStatus moves the event to `to` only if its current status is one
// of `from`. The check and the write are a single statement.
func (r *eventRepository) TransitionStatus(ctx context.Context, id string, from []models.EventStatus, to models.EventStatus, rejectionReason *string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(map[string]any{
			"status":           to,
			"rejection_reason": rejectionReason,
			"updated_at":       time.Now().UTC(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("transition event: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *eventRepository) DeleteInStatus(ctx context.Context, id string, statuses []models.EventStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND status IN ?", id, statuses).
		Delete(&models.Event{})
	if res.Error != nil {
		return false, fmt.Errorf("delete event: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// IncrementRegistrations is the capacity guard: every registration
// precondition and the increment run as one conditional UPDATE, so two
// concurrent callers can never both pass the last free seat.
func (r *eventRepository) IncrementRegistrations(ctx context.Context, id, registrantID string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", id).
		Where("status = ?", models.StatusPublished).
		Where("end_date > ?", now.UTC()).
		Where("is_registration_required = ?", true).
		Where("organizer_id <> ?", registrantID).
		Where("(max_registrations IS NULL OR registrations_count < max_registrations)").
		UpdateColumn("registrations_count", gorm.Expr("registrations_count + ?", 1))
	if res.Error != nil {
		return false, fmt.Errorf("increment registrations: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// DecrementRegistrations never takes the counter below zero.
func (r *eventRepository) DecrementRegistrations(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ? AND registrations_count > 0", id).
		UpdateColumn("registrations_count", gorm.Expr("registrations_count - ?", 1))
	if res.Error != nil {
		return false, fmt.Errorf("decrement registrations: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}
