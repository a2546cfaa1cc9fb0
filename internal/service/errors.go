package service

import (
	"github.com/Kusalkumar06/eventia/internal/apperr"
	"github.com/Kusalkumar06/eventia/internal/auth"
)

var (
	ErrUnauthenticated       = auth.ErrUnauthenticated
	ErrOrganizerRoleRequired = apperr.New(apperr.Forbidden, "organizer role required")
	ErrAdminOnly             = apperr.New(apperr.Forbidden, "admin role required")
	ErrNotEventOwner         = apperr.New(apperr.Forbidden, "you are not allowed to manage this event")

	ErrEventNotFound    = apperr.New(apperr.NotFound, "event not found")
	ErrCategoryNotFound = apperr.New(apperr.NotFound, "category not found")
	ErrUserNotFound     = apperr.New(apperr.NotFound, "user not found")
	ErrNotRegistered    = apperr.New(apperr.NotFound, "Not registered for this event")

	ErrRegistrationUnavailable = apperr.New(apperr.Conflict, "event full, ended, unpublished, registration not required, or caller is organizer")
	ErrAlreadyRegistered       = apperr.New(apperr.Conflict, "already registered for this event")
	ErrRegistrationFailed      = apperr.New(apperr.Internal, "registration failed")

	ErrNotEditable        = apperr.New(apperr.Conflict, "Only draft, rejected or published events can be edited")
	ErrNotPublishable     = apperr.New(apperr.Conflict, "Only draft or pending events can be published")
	ErrNotRejectable      = apperr.New(apperr.Conflict, "Only draft or pending events can be rejected")
	ErrNotCancellable     = apperr.New(apperr.Conflict, "Only published events can be cancelled")
	ErrNotDeletable       = apperr.New(apperr.Conflict, "Only draft or rejected events can be deleted")
	ErrCapacityBelowCount = apperr.New(apperr.Conflict, "max registrations cannot be lower than current registrations")
	ErrEventChanged       = apperr.New(apperr.Conflict, "event was modified concurrently, reload and retry")
	ErrSlugExhausted      = apperr.New(apperr.Conflict, "could not allocate a unique slug")

	ErrOrganizerRequestNotAllowed = apperr.New(apperr.Conflict, "organizer request is already pending or approved")
	ErrNoPendingOrganizerRequest  = apperr.New(apperr.Conflict, "user has no pending organizer request")
	ErrCategoryExists             = apperr.New(apperr.Conflict, "category already exists")
)
