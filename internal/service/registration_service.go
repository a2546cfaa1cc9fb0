package service

import (
	"context"
	"errors"

	"github.com/Kusalkumar06/eventia/internal/apperr"
	"github.com/Kusalkumar06/eventia/internal/auth"
	"github.com/Kusalkumar06/eventia/internal/models"
	"github.com/Kusalkumar06/eventia/internal/repository"
)

type RegistrationService interface {
	Register(ctx context.Context, eventID string, actor auth.Principal) (*models.Registration, error)
	Unregister(ctx context.Context, eventID string, actor auth.Principal) error
	ListForEvent(ctx context.Context, eventID string, actor auth.Principal) ([]models.Registration, error)
	ListForUser(ctx context.Context, actor auth.Principal) ([]models.Registration, error)
}

type registrationService struct {
	Deps
}

func NewRegistrationService(d Deps) RegistrationService {
	return &registrationService{Deps: d.withDefaults()}
}

func (s *registrationService) Register(ctx context.Context, eventID string, actor auth.Principal) (*models.Registration, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}

	// 1. Capacity guard: preconditions and increment in one statement
	ok, err := s.Events.IncrementRegistrations(ctx, eventID, actor.ID, s.Now())
	if err != nil {
		return nil, apperr.Wrap(ErrRegistrationFailed, err)
	}
	if !ok {
		return nil, ErrRegistrationUnavailable
	}

	// 2. Claim the (user, event) pair; undo the seat if that fails
	reg := &models.Registration{UserID: actor.ID, EventID: eventID}
	if err := s.Registrations.Create(ctx, reg); err != nil {
		s.compensate(ctx, eventID, actor.ID, err)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyRegistered
		}
		return nil, apperr.Wrap(ErrRegistrationFailed, err)
	}

	// 3. Side effects; none of these can undo the registration
	ctx, cancel := followUp(ctx)
	defer cancel()
	event, err := s.Events.FindByID(ctx, eventID)
	if err != nil {
		s.Log.Warn().Err(err).Str("event_id", eventID).Msg("registered but could not reload event")
		event = &models.Event{ID: eventID}
	}
	s.Activities.Record(ctx, actor, models.ActionEventRegistered, models.EntityEvent, eventID,
		"registered for "+event.Title)
	subject, body := registeredEmail(event.Title)
	s.notifyUser(ctx, actor.ID, subject, body)
	if event.Slug != "" {
		s.Cache.Invalidate(ctx, TagEventDetail(event.Slug))
	}

	s.Log.Info().
		Str("event_id", eventID).
		Str("user_id", actor.ID).
		Int("registrations_count", event.RegistrationsCount).
		Msg("registration created")
	return reg, nil
}

// compensate releases a claimed seat. It runs even when the request was
// cancelled, otherwise the seat would leak.
func (s *registrationService) compensate(ctx context.Context, eventID, userID string, cause error) {
	ctx, cancel := followUp(ctx)
	defer cancel()
	released, err := s.Events.DecrementRegistrations(ctx, eventID)
	log := s.Log.Warn()
	if err != nil || !released {
		log = s.Log.Error().AnErr("compensation_error", err)
	}
	log.Err(cause).
		Str("event_id", eventID).
		Str("user_id", userID).
		Bool("seat_released", released).
		Msg("registration insert failed after seat was claimed")
}

func (s *registrationService) Unregister(ctx context.Context, eventID string, actor auth.Principal) error {
	if !actor.Authenticated() {
		return ErrUnauthenticated
	}

	deleted, err := s.Registrations.Delete(ctx, actor.ID, eventID)
	if err != nil {
		return apperr.Wrap(ErrRegistrationFailed, err)
	}
	if !deleted {
		return ErrNotRegistered
	}

	// Only the row delete that succeeded releases a seat, so racing
	// unregisters cannot double-decrement. The row is gone at this point,
	// so the decrement must not depend on the caller staying connected.
	ctx, cancel := followUp(ctx)
	defer cancel()
	released, err := s.Events.DecrementRegistrations(ctx, eventID)
	if err != nil || !released {
		s.Log.Error().Err(err).Str("event_id", eventID).Bool("seat_released", released).
			Msg("registration removed but counter was not decremented")
	}

	event, err := s.Events.FindByID(ctx, eventID)
	if err != nil {
		event = &models.Event{ID: eventID}
	}
	s.Activities.Record(ctx, actor, models.ActionEventUnregistered, models.EntityEvent, eventID,
		"unregistered from "+event.Title)
	subject, body := unregisteredEmail(event.Title)
	s.notifyUser(ctx, actor.ID, subject, body)
	if event.Slug != "" {
		s.Cache.Invalidate(ctx, TagEventDetail(event.Slug))
	}

	s.Log.Info().Str("event_id", eventID).Str("user_id", actor.ID).Msg("registration removed")
	return nil
}

func (s *registrationService) ListForEvent(ctx context.Context, eventID string, actor auth.Principal) ([]models.Registration, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	event, err := s.Events.FindByID(ctx, eventID)
	if err != nil {
		return nil, eventLookupErr(err)
	}
	if !event.OwnedBy(actor.ID) && !actor.IsAdmin() {
		return nil, ErrNotEventOwner
	}
	return s.Registrations.ListByEvent(ctx, eventID)
}

func (s *registrationService) ListForUser(ctx context.Context, actor auth.Principal) ([]models.Registration, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	return s.Registrations.ListByUser(ctx, actor.ID)
}

func eventLookupErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrEventNotFound
	}
	return apperr.Wrap(apperr.New(apperr.Internal, "load event"), err)
}
