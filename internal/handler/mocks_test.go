package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/Kusalkumar06/eventia/internal/auth"
	"github.com/Kusalkumar06/eventia/internal/models"
	"github.com/Kusalkumar06/eventia/internal/service"
	"github.com/Kusalkumar06/eventia/pkg/validator"
	"github.com/labstack/echo/v4"
)

// --- Mock auth.Provider ---

type mockAuth struct {
	principal auth.Principal
}

func (m mockAuth) RequireAuthenticated(echo.Context) (auth.Principal, error) {
	if !m.principal.Authenticated() {
		return auth.Principal{}, auth.ErrUnauthenticated
	}
	return m.principal, nil
}

func (m mockAuth) RequireRole(c echo.Context, role models.Role) (auth.Principal, error) {
	p, err := m.RequireAuthenticated(c)
	if err != nil {
		return p, err
	}
	if !p.Role.AtLeast(role) {
		return auth.Principal{}, auth.ErrInsufficientRole
	}
	return p, nil
}

var (
	anonymous = mockAuth{}
	asUser    = mockAuth{principal: auth.Principal{ID: "user-1", Role: models.RoleUser}}
	asOrg     = mockAuth{principal: auth.Principal{ID: "org-1", Role: models.RoleOrganizer}}
	asAdmin   = mockAuth{principal: auth.Principal{ID: "admin-1", Role: models.RoleAdmin}}
)

// --- Mock EventService ---

type mockEventService struct {
	createFn           func(ctx context.Context, in service.EventInput, actor auth.Principal) (*models.Event, error)
	updateFn           func(ctx context.Context, id string, in service.EventInput, actor auth.Principal) (*models.Event, error)
	deleteFn           func(ctx context.Context, id string, actor auth.Principal) error
	publishFn          func(ctx context.Context, id string, actor auth.Principal) error
	rejectFn           func(ctx context.Context, id, reason string, actor auth.Principal) error
	cancelFn           func(ctx context.Context, id string, actor auth.Principal) error
	getFn              func(ctx context.Context, id string, actor auth.Principal) (*models.Event, error)
	getBySlugFn        func(ctx context.Context, slug string, actor auth.Principal) (*models.Event, error)
	listPublishedFn    func(ctx context.Context, limit, offset int) ([]models.Event, error)
	listForOrganizerFn func(ctx context.Context, actor auth.Principal) ([]models.Event, error)
	listForAdminFn     func(ctx context.Context, actor auth.Principal, filter service.EventListFilter) ([]models.Event, error)
}

func (m *mockEventService) Create(ctx context.Context, in service.EventInput, actor auth.Principal) (*models.Event, error) {
	return m.createFn(ctx, in, actor)
}
func (m *mockEventService) Update(ctx context.Context, id string, in service.EventInput, actor auth.Principal) (*models.Event, error) {
	return m.updateFn(ctx, id, in, actor)
}
func (m *mockEventService) Delete(ctx context.Context, id string, actor auth.Principal) error {
	return m.deleteFn(ctx, id, actor)
}
func (m *mockEventService) Publish(ctx context.Context, id string, actor auth.Principal) error {
	return m.publishFn(ctx, id, actor)
}
func (m *mockEventService) Reject(ctx context.Context, id, reason string, actor auth.Principal) error {
	return m.rejectFn(ctx, id, reason, actor)
}
func (m *mockEventService) Cancel(ctx context.Context, id string, actor auth.Principal) error {
	return m.cancelFn(ctx, id, actor)
}
func (m *mockEventService) Get(ctx context.Context, id string, actor auth.Principal) (*models.Event, error) {
	return m.getFn(ctx, id, actor)
}
func (m *mockEventService) GetBySlug(ctx context.Context, slug string, actor auth.Principal) (*models.Event, error) {
	return m.getBySlugFn(ctx, slug, actor)
}
func (m *mockEventService) ListPublished(ctx context.Context, limit, offset int) ([]models.Event, error) {
	return m.listPublishedFn(ctx, limit, offset)
}
func (m *mockEventService) ListForOrganizer(ctx context.Context, actor auth.Principal) ([]models.Event, error) {
	return m.listForOrganizerFn(ctx, actor)
}
func (m *mockEventService) ListForAdmin(ctx context.Context, actor auth.Principal, filter service.EventListFilter) ([]models.Event, error) {
	return m.listForAdminFn(ctx, actor, filter)
}

// --- Mock RegistrationService ---

type mockRegistrationService struct {
	registerFn     func(ctx context.Context, eventID string, actor auth.Principal) (*models.Registration, error)
	unregisterFn   func(ctx context.Context, eventID string, actor auth.Principal) error
	listForEventFn func(ctx context.Context, eventID string, actor auth.Principal) ([]models.Registration, error)
	listForUserFn  func(ctx context.Context, actor auth.Principal) ([]models.Registration, error)
}

func (m *mockRegistrationService) Register(ctx context.Context, eventID string, actor auth.Principal) (*models.Registration, error) {
	return m.registerFn(ctx, eventID, actor)
}
func (m *mockRegistrationService) Unregister(ctx context.Context, eventID string, actor auth.Principal) error {
	return m.unregisterFn(ctx, eventID, actor)
}
func (m *mockRegistrationService) ListForEvent(ctx context.Context, eventID string, actor auth.Principal) ([]models.Registration, error) {
	return m.listForEventFn(ctx, eventID, actor)
}
func (m *mockRegistrationService) ListForUser(ctx context.Context, actor auth.Principal) ([]models.Registration, error) {
	return m.listForUserFn(ctx, actor)
}

// --- Mock ActivityService ---

type mockActivityService struct {
	recentFn    func(ctx context.Context, actor auth.Principal, limit int) ([]models.Activity, error)
	forEntityFn func(ctx context.Context, actor auth.Principal, entityType models.EntityType, entityID string) ([]models.Activity, error)
	forActorFn  func(ctx context.Context, actor auth.Principal) ([]models.Activity, error)
}

func (m *mockActivityService) Record(context.Context, auth.Principal, models.ActivityAction, models.EntityType, string, string) {
}
func (m *mockActivityService) Recent(ctx context.Context, actor auth.Principal, limit int) ([]models.Activity, error) {
	return m.recentFn(ctx, actor, limit)
}
func (m *mockActivityService) ForEntity(ctx context.Context, actor auth.Principal, entityType models.EntityType, entityID string) ([]models.Activity, error) {
	return m.forEntityFn(ctx, actor, entityType, entityID)
}
func (m *mockActivityService) ForActor(ctx context.Context, actor auth.Principal) ([]models.Activity, error) {
	return m.forActorFn(ctx, actor)
}

// --- Mock UserService ---

type mockUserService struct {
	requestFn func(ctx context.Context, actor auth.Principal) error
	approveFn func(ctx context.Context, userID string, actor auth.Principal) error
	rejectFn  func(ctx context.Context, userID string, actor auth.Principal) error
}

func (m *mockUserService) Get(ctx context.Context, id string, actor auth.Principal) (*models.User, error) {
	return nil, nil
}
func (m *mockUserService) RequestOrganizer(ctx context.Context, actor auth.Principal) error {
	return m.requestFn(ctx, actor)
}
func (m *mockUserService) ApproveOrganizer(ctx context.Context, userID string, actor auth.Principal) error {
	return m.approveFn(ctx, userID, actor)
}
func (m *mockUserService) RejectOrganizer(ctx context.Context, userID string, actor auth.Principal) error {
	return m.rejectFn(ctx, userID, actor)
}

// --- Mock CategoryService ---

type mockCategoryService struct {
	listFn   func(ctx context.Context) ([]models.Category, error)
	createFn func(ctx context.Context, name string, actor auth.Principal) (*models.Category, error)
}

func (m *mockCategoryService) List(ctx context.Context) ([]models.Category, error) {
	return m.listFn(ctx)
}
func (m *mockCategoryService) Create(ctx context.Context, name string, actor auth.Principal) (*models.Category, error) {
	return m.createFn(ctx, name, actor)
}
func (m *mockCategoryService) SeedDefaults(ctx context.Context) error { return nil }

// --- Helpers ---

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.EchoValidator{}
	var req = httptest.NewRequest(method, target, nil)
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
