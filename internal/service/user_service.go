package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kusalkumar06/eventia/internal/auth"
	"github.com/Kusalkumar06/eventia/internal/models"
	"github.com/Kusalkumar06/eventia/internal/repository"
)

// UserService runs the organizer request workflow:
// none/rejected -> pending -> approved (role becomes organizer) | rejected.
type UserService interface {
	Get(ctx context.Context, id string, actor auth.Principal) (*models.User, error)
	RequestOrganizer(ctx context.Context, actor auth.Principal) error
	ApproveOrganizer(ctx context.Context, userID string, actor auth.Principal) error
	RejectOrganizer(ctx context.Context, userID string, actor auth.Principal) error
}

type userService struct {
	Deps
}

func NewUserService(d Deps) UserService {
	return &userService{Deps: d.withDefaults()}
}

func (s *userService) Get(ctx context.Context, id string, actor auth.Principal) (*models.User, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if actor.ID != id && !actor.IsAdmin() {
		return nil, ErrUserNotFound
	}
	return s.findUser(ctx, id)
}

func (s *userService) RequestOrganizer(ctx context.Context, actor auth.Principal) error {
	if !actor.Authenticated() {
		return ErrUnauthenticated
	}
	if actor.Role != models.RoleUser {
		return ErrOrganizerRequestNotAllowed
	}
	ok, err := s.Users.SetOrganizerRequest(ctx, actor.ID,
		[]models.OrganizerRequestStatus{models.OrganizerRequestNone, models.OrganizerRequestRejected},
		models.OrganizerRequestPending, nil)
	if err != nil {
		return wrapInternal("request organizer", err)
	}
	if !ok {
		if _, err := s.findUser(ctx, actor.ID); err != nil {
			return err
		}
		return ErrOrganizerRequestNotAllowed
	}
	ctx, cancel := followUp(ctx)
	defer cancel()
	s.Activities.Record(ctx, actor, models.ActionOrganizerRequested, models.EntityUser, actor.ID, "requested organizer access")
	return nil
}

func (s *userService) ApproveOrganizer(ctx context.Context, userID string, actor auth.Principal) error {
	role := models.RoleOrganizer
	user, err := s.decide(ctx, userID, actor, models.OrganizerRequestApproved, &role)
	if err != nil {
		return err
	}
	ctx, cancel := followUp(ctx)
	defer cancel()
	s.Activities.Record(ctx, actor, models.ActionOrganizerApproved, models.EntityUser, userID,
		fmt.Sprintf("approved organizer request of %s", user.Email))
	subject, body := organizerApprovedEmail(user.Name)
	s.send(ctx, user.Email, subject, body)
	return nil
}

func (s *userService) RejectOrganizer(ctx context.Context, userID string, actor auth.Principal) error {
	user, err := s.decide(ctx, userID, actor, models.OrganizerRequestRejected, nil)
	if err != nil {
		return err
	}
	ctx, cancel := followUp(ctx)
	defer cancel()
	s.Activities.Record(ctx, actor, models.ActionOrganizerRejected, models.EntityUser, userID,
		fmt.Sprintf("rejected organizer request of %s", user.Email))
	subject, body := organizerRejectedEmail(user.Name)
	s.send(ctx, user.Email, subject, body)
	return nil
}

func (s *userService) decide(ctx context.Context, userID string, actor auth.Principal, to models.OrganizerRequestStatus, role *models.Role) (*models.User, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ok, err := s.Users.SetOrganizerRequest(ctx, userID,
		[]models.OrganizerRequestStatus{models.OrganizerRequestPending}, to, role)
	if err != nil {
		return nil, wrapInternal("decide organizer request", err)
	}
	if !ok {
		return nil, ErrNoPendingOrganizerRequest
	}
	return user, nil
}

func (s *userService) findUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, wrapInternal("load user", err)
	}
	return user, nil
}
