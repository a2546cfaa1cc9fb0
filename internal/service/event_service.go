package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Kusalkumar06/eventia/internal/apperr"
	"github.com/Kusalkumar06/eventia/internal/auth"
	"github.com/Kusalkumar06/eventia/internal/models"
	"github.com/Kusalkumar06/eventia/internal/repository"
	"github.com/Kusalkumar06/eventia/pkg/validator"
)

const (
	minCustomCategoryLength = 3
	minRejectReasonLength   = 10
	maxCreateAttempts       = 3
)

var (
	editableStatuses  = []models.EventStatus{models.StatusDraft, models.StatusRejected, models.StatusPublished}
	deletableStatuses = []models.EventStatus{models.StatusDraft, models.StatusRejected}
)

// EventInput holds the organizer-editable fields of an event. Status and
// the registration counter are never taken from input.
type EventInput struct {
	Title                  string           `json:"title" validate:"required,min=3,max=200"`
	Description            string           `json:"description" validate:"required,min=10"`
	CategoryID             string           `json:"category_id" validate:"required"`
	CustomCategory         string           `json:"custom_category" validate:"max=100"`
	Mode                   models.EventMode `json:"mode" validate:"required,oneof=online offline"`
	Location               models.Location  `json:"location"`
	OnlineURL              string           `json:"online_url" validate:"omitempty,http_url,max=500"`
	StartDate              time.Time        `json:"start_date" validate:"required"`
	EndDate                time.Time        `json:"end_date" validate:"required"`
	IsRegistrationRequired bool             `json:"is_registration_required"`
	MaxRegistrations       *int             `json:"max_registrations" validate:"omitempty,gt=0"`
}

type EventListFilter struct {
	Status models.EventStatus
	Limit  int
	Offset int
}

type EventService interface {
	Create(ctx context.Context, in EventInput, actor auth.Principal) (*models.Event, error)
	Update(ctx context.Context, id string, in EventInput, actor auth.Principal) (*models.Event, error)
	Delete(ctx context.Context, id string, actor auth.Principal) error
	Publish(ctx context.Context, id string, actor auth.Principal) error
	Reject(ctx context.Context, id, reason string, actor auth.Principal) error
	Cancel(ctx context.Context, id string, actor auth.Principal) error

	Get(ctx context.Context, id string, actor auth.Principal) (*models.Event, error)
	GetBySlug(ctx context.Context, slug string, actor auth.Principal) (*models.Event, error)
	ListPublished(ctx context.Context, limit, offset int) ([]models.Event, error)
	ListForOrganizer(ctx context.Context, actor auth.Principal) ([]models.Event, error)
	ListForAdmin(ctx context.Context, actor auth.Principal, filter EventListFilter) ([]models.Event, error)
}

type eventService struct {
	Deps
}

func NewEventService(d Deps) EventService {
	return &eventService{Deps: d.withDefaults()}
}

func (s *eventService) Create(ctx context.Context, in EventInput, actor auth.Principal) (*models.Event, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if !actor.Role.AtLeast(models.RoleOrganizer) {
		return nil, ErrOrganizerRoleRequired
	}
	if err := s.validateInput(ctx, &in); err != nil {
		return nil, err
	}

	event := &models.Event{
		OrganizerID:        actor.ID,
		Status:             models.StatusDraft,
		RegistrationsCount: 0,
	}
	applyInput(event, in)

	// Two creates may pick the same free slug; the unique index decides and
	// the loser resolves again.
	var err error
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		event.ID = ""
		event.Slug, err = uniqueSlug(ctx, event.Title, s.Events.SlugExists)
		if errors.Is(err, ErrSlugExhausted) {
			return nil, err
		}
		if err != nil {
			return nil, wrapInternal("allocate slug", err)
		}
		err = s.Events.Create(ctx, event)
		if !errors.Is(err, repository.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugExhausted
		}
		return nil, wrapInternal("create event", err)
	}

	ctx, cancel := followUp(ctx)
	defer cancel()
	s.Activities.Record(ctx, actor, models.ActionEventCreated, models.EntityEvent, event.ID,
		fmt.Sprintf("created event %q", event.Title))
	s.Cache.Invalidate(ctx, managementTags(event.OrganizerID)...)
	s.Log.Info().Str("event_id", event.ID).Str("slug", event.Slug).Msg("event created")
	return event, nil
}

func (s *eventService) Update(ctx context.Context, id string, in EventInput, actor auth.Principal) (*models.Event, error) {
	event, err := s.loadManaged(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if !containsStatus(editableStatuses, event.Status) {
		return nil, ErrNotEditable
	}
	if err := s.validateInput(ctx, &in); err != nil {
		return nil, err
	}

	previous := event.Status
	applyInput(event, in)
	event.UpdatedAt = s.Now().UTC()
	fields := mutableColumns(event)

	resubmitted := previous == models.StatusRejected
	if resubmitted {
		event.Status = models.StatusDraft
		event.RejectionReason = nil
		fields["status"] = models.StatusDraft
		fields["rejection_reason"] = nil
	}

	var guard *int
	if event.IsRegistrationRequired {
		guard = event.MaxRegistrations
	}
	ok, err := s.Events.UpdateFields(ctx, id, previous, guard, fields)
	if err != nil {
		return nil, wrapInternal("update event", err)
	}
	if !ok {
		return nil, s.explainFailedUpdate(ctx, id, guard)
	}

	ctx, cancel := followUp(ctx)
	defer cancel()
	msg := fmt.Sprintf("updated event %q", event.Title)
	if resubmitted {
		msg = fmt.Sprintf("resubmitted rejected event %q", event.Title)
	}
	s.Activities.Record(ctx, actor, models.ActionEventUpdated, models.EntityEvent, id, msg)
	s.Cache.Invalidate(ctx, managementTags(event.OrganizerID)...)
	return event, nil
}

func (s *eventService) explainFailedUpdate(ctx context.Context, id string, guard *int) error {
	current, err := s.Events.FindByID(ctx, id)
	if err != nil {
		return eventLookupErr(err)
	}
	if guard != nil && current.RegistrationsCount > *guard {
		return ErrCapacityBelowCount
	}
	return ErrEventChanged
}

func (s *eventService) Delete(ctx context.Context, id string, actor auth.Principal) error {
	event, err := s.loadManaged(ctx, id, actor)
	if err != nil {
		return err
	}
	ok, err := s.Events.DeleteInStatus(ctx, id, deletableStatuses)
	if err != nil {
		return wrapInternal("delete event", err)
	}
	if !ok {
		return ErrNotDeletable
	}

	ctx, cancel := followUp(ctx)
	defer cancel()
	s.Activities.Record(ctx, actor, models.ActionEventDeleted, models.EntityEvent, id,
		fmt.Sprintf("deleted event %q", event.Title))
	s.Cache.Invalidate(ctx, managementTags(event.OrganizerID)...)
	return nil
}

func (s *eventService) Publish(ctx context.Context, id string, actor auth.Principal) error {
	event, err := s.loadModerated(ctx, id, actor)
	if err != nil {
		return err
	}
	ok, err := s.Events.TransitionStatus(ctx, id, []models.EventStatus{models.StatusDraft}, models.StatusPublished, nil)
	if err != nil {
		return wrapInternal("publish event", err)
	}
	if !ok {
		return ErrNotPublishable
	}

	ctx, cancel := followUp(ctx)
	defer cancel()
	s.Activities.Record(ctx, actor, models.ActionEventPublished, models.EntityEvent, id,
		fmt.Sprintf("published event %q", event.Title))
	subject, body := publishedEmail(event.Title)
	s.notifyUser(ctx, event.OrganizerID, subject, body)
	s.Cache.Invalidate(ctx, publicTags(event.OrganizerID, event.Slug)...)
	return nil
}

func (s *eventService) Reject(ctx context.Context, id, reason string, actor auth.Principal) error {
	if !actor.Authenticated() {
		return ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}
	reason = strings.TrimSpace(reason)
	if len([]rune(reason)) < minRejectReasonLength {
		return apperr.Validationf("rejection reason must be at least %d characters", minRejectReasonLength)
	}
	event, err := s.loadModerated(ctx, id, actor)
	if err != nil {
		return err
	}
	ok, err := s.Events.TransitionStatus(ctx, id, []models.EventStatus{models.StatusDraft}, models.StatusRejected, &reason)
	if err != nil {
		return wrapInternal("reject event", err)
	}
	if !ok {
		return ErrNotRejectable
	}

	ctx, cancel := followUp(ctx)
	defer cancel()
	s.Activities.Record(ctx, actor, models.ActionEventRejected, models.EntityEvent, id,
		fmt.Sprintf("rejected event %q: %s", event.Title, reason))
	subject, body := rejectedEmail(event.Title, reason)
	s.notifyUser(ctx, event.OrganizerID, subject, body)
	s.Cache.Invalidate(ctx, managementTags(event.OrganizerID)...)
	return nil
}

func (s *eventService) Cancel(ctx context.Context, id string, actor auth.Principal) error {
	event, err := s.loadManaged(ctx, id, actor)
	if err != nil {
		return err
	}
	ok, err := s.Events.TransitionStatus(ctx, id, []models.EventStatus{models.StatusPublished}, models.StatusCancelled, nil)
	if err != nil {
		return wrapInternal("cancel event", err)
	}
	if !ok {
		return ErrNotCancellable
	}

	ctx, cancel := followUp(ctx)
	defer cancel()
	s.Activities.Record(ctx, actor, models.ActionEventCancelled, models.EntityEvent, id,
		fmt.Sprintf("cancelled event %q", event.Title))
	s.notifyRegistrants(ctx, event)
	s.Cache.Invalidate(ctx, publicTags(event.OrganizerID, event.Slug)...)
	return nil
}

func (s *eventService) notifyRegistrants(ctx context.Context, event *models.Event) {
	regs, err := s.Registrations.ListByEvent(ctx, event.ID)
	if err != nil {
		s.Log.Warn().Err(err).Str("event_id", event.ID).Msg("cancellation notice skipped: cannot list registrations")
		return
	}
	ids := make([]string, 0, len(regs))
	for _, r := range regs {
		ids = append(ids, r.UserID)
	}
	users, err := s.Users.FindByIDs(ctx, ids)
	if err != nil {
		s.Log.Warn().Err(err).Str("event_id", event.ID).Msg("cancellation notice skipped: cannot load registrants")
		return
	}
	subject, body := cancelledEmail(event.Title)
	for _, u := range users {
		s.send(ctx, u.Email, subject, body)
	}
}

func (s *eventService) Get(ctx context.Context, id string, actor auth.Principal) (*models.Event, error) {
	event, err := s.Events.FindByID(ctx, id)
	if err != nil {
		return nil, eventLookupErr(err)
	}
	return visibleTo(event, actor)
}

func (s *eventService) GetBySlug(ctx context.Context, slug string, actor auth.Principal) (*models.Event, error) {
	event, err := s.Events.FindBySlug(ctx, slug)
	if err != nil {
		return nil, eventLookupErr(err)
	}
	return visibleTo(event, actor)
}

func (s *eventService) ListPublished(ctx context.Context, limit, offset int) ([]models.Event, error) {
	return s.Events.List(ctx, repository.EventFilter{
		Statuses: []models.EventStatus{models.StatusPublished},
		Upcoming: true,
		Limit:    limit,
		Offset:   offset,
	})
}

func (s *eventService) ListForOrganizer(ctx context.Context, actor auth.Principal) ([]models.Event, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if !actor.Role.AtLeast(models.RoleOrganizer) {
		return nil, ErrOrganizerRoleRequired
	}
	return s.Events.List(ctx, repository.EventFilter{OrganizerID: actor.ID})
}

func (s *eventService) ListForAdmin(ctx context.Context, actor auth.Principal, filter EventListFilter) ([]models.Event, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	f := repository.EventFilter{Limit: filter.Limit, Offset: filter.Offset}
	if filter.Status != "" {
		f.Statuses = []models.EventStatus{filter.Status}
	}
	return s.Events.List(ctx, f)
}

// loadManaged returns the event if actor owns it or is an admin.
func (s *eventService) loadManaged(ctx context.Context, id string, actor auth.Principal) (*models.Event, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	event, err := s.Events.FindByID(ctx, id)
	if err != nil {
		return nil, eventLookupErr(err)
	}
	if !event.OwnedBy(actor.ID) && !actor.IsAdmin() {
		return nil, ErrNotEventOwner
	}
	return event, nil
}

func (s *eventService) loadModerated(ctx context.Context, id string, actor auth.Principal) (*models.Event, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	event, err := s.Events.FindByID(ctx, id)
	if err != nil {
		return nil, eventLookupErr(err)
	}
	return event, nil
}

// validateInput trims and normalizes in, then checks field and cross-field rules.
func (s *eventService) validateInput(ctx context.Context, in *EventInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.CustomCategory = strings.TrimSpace(in.CustomCategory)
	in.OnlineURL = strings.TrimSpace(in.OnlineURL)
	in.Location.City = strings.TrimSpace(in.Location.City)
	in.Location.Venue = strings.TrimSpace(in.Location.Venue)
	in.Location.Address = strings.TrimSpace(in.Location.Address)

	if err := validator.Validate(ctx, in); err != nil {
		return apperr.New(apperr.Validation, err.Error())
	}

	in.StartDate = in.StartDate.UTC()
	in.EndDate = in.EndDate.UTC()
	if !in.EndDate.After(in.StartDate) {
		return apperr.Validationf("end date must be after start date")
	}

	switch in.Mode {
	case models.ModeOnline:
		if in.OnlineURL == "" {
			return apperr.Validationf("online events require an online URL")
		}
		in.Location = models.Location{}
	case models.ModeOffline:
		if in.Location.City == "" {
			return apperr.Validationf("offline events require at least a city")
		}
		in.OnlineURL = ""
	}

	if in.IsRegistrationRequired {
		if in.MaxRegistrations == nil || *in.MaxRegistrations <= 0 {
			return apperr.Validationf("max registrations must be a positive integer when registration is required")
		}
	} else {
		in.MaxRegistrations = nil
	}

	category, err := s.Categories.FindByID(ctx, in.CategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return wrapInternal("load category", err)
	}
	if category.IsOthers() {
		if len([]rune(in.CustomCategory)) < minCustomCategoryLength {
			return apperr.Validationf("custom category must be at least %d characters", minCustomCategoryLength)
		}
	} else if in.CustomCategory != "" {
		return apperr.Validationf("custom category is only allowed for the Others category")
	}
	return nil
}

func applyInput(e *models.Event, in EventInput) {
	e.Title = in.Title
	e.Description = in.Description
	e.CategoryID = in.CategoryID
	e.CustomCategory = in.CustomCategory
	e.Mode = in.Mode
	e.Location = in.Location
	e.OnlineURL = in.OnlineURL
	e.StartDate = in.StartDate
	e.EndDate = in.EndDate
	e.IsRegistrationRequired = in.IsRegistrationRequired
	e.MaxRegistrations = in.MaxRegistrations
}

// mutableColumns is the update whitelist.
func mutableColumns(e *models.Event) map[string]any {
	return map[string]any{
		"title":                    e.Title,
		"description":              e.Description,
		"category_id":              e.CategoryID,
		"custom_category":          e.CustomCategory,
		"mode":                     e.Mode,
		"location_city":            e.Location.City,
		"location_venue":           e.Location.Venue,
		"location_address":         e.Location.Address,
		"online_url":               e.OnlineURL,
		"start_date":               e.StartDate,
		"end_date":                 e.EndDate,
		"is_registration_required": e.IsRegistrationRequired,
		"max_registrations":        e.MaxRegistrations,
		"updated_at":               e.UpdatedAt,
	}
}

// visibleTo hides unmoderated events from everyone but their owner and admins.
func visibleTo(event *models.Event, actor auth.Principal) (*models.Event, error) {
	switch event.Status {
	case models.StatusPublished, models.StatusCancelled:
		return event, nil
	}
	if event.OwnedBy(actor.ID) || actor.IsAdmin() {
		return event, nil
	}
	return nil, ErrEventNotFound
}

func containsStatus(set []models.EventStatus, s models.EventStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func wrapInternal(op string, err error) error {
	return apperr.Wrap(apperr.New(apperr.Internal, op), err)
}
