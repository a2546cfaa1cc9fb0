package service

import (
	"context"
	"time"

	"github.com/Kusalkumar06/eventia/internal/auth"
	"github.com/Kusalkumar06/eventia/internal/models"
	"github.com/Kusalkumar06/eventia/internal/repository"
	"github.com/rs/zerolog"
)

const defaultActivityLimit = 50

// ActivityService is the append-only audit trail. Record never fails the
// caller: a write error is logged and dropped.
type ActivityService interface {
	Record(ctx context.Context, actor auth.Principal, action models.ActivityAction, entityType models.EntityType, entityID, message string)
	Recent(ctx context.Context, actor auth.Principal, limit int) ([]models.Activity, error)
	ForEntity(ctx context.Context, actor auth.Principal, entityType models.EntityType, entityID string) ([]models.Activity, error)
	ForActor(ctx context.Context, actor auth.Principal) ([]models.Activity, error)
}

type activityService struct {
	repo repository.ActivityRepository
	log  *zerolog.Logger
	now  func() time.Time
}

func NewActivityService(repo repository.ActivityRepository, log *zerolog.Logger) ActivityService {
	return &activityService{repo: repo, log: log, now: time.Now}
}

func (s *activityService) Record(ctx context.Context, actor auth.Principal, action models.ActivityAction, entityType models.EntityType, entityID, message string) {
	activity := &models.Activity{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Message:    message,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.Append(ctx, activity); err != nil {
		s.log.Error().
			Err(err).
			Str("action", string(action)).
			Str("entity_id", entityID).
			Str("actor_id", actor.ID).
			Msg("failed to record activity")
	}
}

func (s *activityService) Recent(ctx context.Context, actor auth.Principal, limit int) ([]models.Activity, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	if limit <= 0 || limit > 500 {
		limit = defaultActivityLimit
	}
	return s.repo.List(ctx, repository.ActivityFilter{Limit: limit})
}

func (s *activityService) ForEntity(ctx context.Context, actor auth.Principal, entityType models.EntityType, entityID string) ([]models.Activity, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	return s.repo.List(ctx, repository.ActivityFilter{EntityType: entityType, EntityID: entityID, Limit: defaultActivityLimit})
}

func (s *activityService) ForActor(ctx context.Context, actor auth.Principal) ([]models.Activity, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	return s.repo.List(ctx, repository.ActivityFilter{ActorID: actor.ID, Limit: defaultActivityLimit})
}

type nopActivities struct{}

func (nopActivities) Record(context.Context, auth.Principal, models.ActivityAction, models.EntityType, string, string) {
}
func (nopActivities) Recent(context.Context, auth.Principal, int) ([]models.Activity, error) {
	return nil, nil
}
func (nopActivities) ForEntity(context.Context, auth.Principal, models.EntityType, string) ([]models.Activity, error) {
	return nil, nil
}
func (nopActivities) ForActor(context.Context, auth.Principal) ([]models.Activity, error) {
	return nil, nil
}
