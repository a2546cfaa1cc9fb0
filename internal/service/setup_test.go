package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Kusalkumar06/eventia/internal/auth"
	"github.com/Kusalkumar06/eventia/internal/models"
	"github.com/Kusalkumar06/eventia/internal/repository"
	"github.com/Kusalkumar06/eventia/pkg/database"
	"github.com/Kusalkumar06/eventia/pkg/logger"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- Recording collaborators ---

type sentMail struct {
	To      string
	Subject string
}

type recordingNotifier struct {
	mu     sync.Mutex
	sent   []sentMail
	reject bool
	panics bool
}

func (n *recordingNotifier) Send(_ context.Context, to, subject, _ string) bool {
	if n.panics {
		panic("smtp exploded")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMail{To: to, Subject: subject})
	return !n.reject
}

func (n *recordingNotifier) recipients() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.sent))
	for i, m := range n.sent {
		out[i] = m.To
	}
	return out
}

type recordingCache struct {
	mu    sync.Mutex
	calls [][]string
}

func (c *recordingCache) Invalidate(_ context.Context, tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, tags)
}

func (c *recordingCache) last() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.calls) == 0 {
		return nil
	}
	return c.calls[len(c.calls)-1]
}

func (c *recordingCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = nil
}

// --- Fixture ---

type fixture struct {
	t   *testing.T
	db  *gorm.DB
	now time.Time

	deps          Deps
	events        EventService
	registrations RegistrationService
	users         UserService
	activities    ActivityService
	categories    CategoryService

	notifier *recordingNotifier
	cache    *recordingCache

	tech   *models.Category
	others *models.Category

	organizer auth.Principal
	admin     auth.Principal
	seq       int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "eventia.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	f := &fixture{
		t:        t,
		db:       db,
		now:      time.Now().UTC(),
		notifier: &recordingNotifier{},
		cache:    &recordingCache{},
	}
	log := logger.Nop()
	categoryRepo := repository.NewCategoryRepository(db)
	f.activities = NewActivityService(repository.NewActivityRepository(db), log)
	f.deps = Deps{
		Events:        repository.NewEventRepository(db),
		Registrations: repository.NewRegistrationRepository(db),
		Users:         repository.NewUserRepository(db),
		Categories:    categoryRepo,
		Activities:    f.activities,
		Notifier:      f.notifier,
		Cache:         f.cache,
		Log:           log,
		Now:           func() time.Time { return f.now },
	}
	f.rebuild()

	f.categories = NewCategoryService(categoryRepo, log)
	require.NoError(t, f.categories.SeedDefaults(context.Background()))
	f.tech = &models.Category{Name: "Tech", Slug: "tech"}
	require.NoError(t, categoryRepo.Create(context.Background(), f.tech))
	cats, err := categoryRepo.List(context.Background())
	require.NoError(t, err)
	for i := range cats {
		if cats[i].IsOthers() {
			f.others = &cats[i]
		}
	}
	require.NotNil(t, f.others)

	f.organizer = f.newUser(models.RoleOrganizer)
	f.admin = f.newUser(models.RoleAdmin)
	return f
}

// rebuild recreates the services after a Deps change.
func (f *fixture) rebuild() {
	f.events = NewEventService(f.deps)
	f.registrations = NewRegistrationService(f.deps)
	f.users = NewUserService(f.deps)
}

func (f *fixture) newUser(role models.Role) auth.Principal {
	f.t.Helper()
	f.seq++
	u := &models.User{
		Name:             fmt.Sprintf("User %d", f.seq),
		Email:            fmt.Sprintf("user%d@example.com", f.seq),
		Role:             role,
		OrganizerRequest: models.OrganizerRequestNone,
	}
	require.NoError(f.t, f.deps.Users.Create(context.Background(), u))
	return auth.Principal{ID: u.ID, Role: role}
}

func (f *fixture) emailOf(p auth.Principal) string {
	f.t.Helper()
	u, err := f.deps.Users.FindByID(context.Background(), p.ID)
	require.NoError(f.t, err)
	return u.Email
}

func intPtr(v int) *int { return &v }

func (f *fixture) input(mutate ...func(*EventInput)) EventInput {
	in := EventInput{
		Title:                  "Go Meetup",
		Description:            "Monthly gophers night",
		CategoryID:             f.tech.ID,
		Mode:                   models.ModeOnline,
		OnlineURL:              "https://meet.example.com/go",
		StartDate:              f.now.Add(24 * time.Hour),
		EndDate:                f.now.Add(26 * time.Hour),
		IsRegistrationRequired: true,
		MaxRegistrations:       intPtr(2),
	}
	for _, m := range mutate {
		m(&in)
	}
	return in
}

func (f *fixture) draftEvent(mutate ...func(*EventInput)) *models.Event {
	f.t.Helper()
	e, err := f.events.Create(context.Background(), f.input(mutate...), f.organizer)
	require.NoError(f.t, err)
	return e
}

func (f *fixture) publishedEvent(mutate ...func(*EventInput)) *models.Event {
	f.t.Helper()
	e := f.draftEvent(mutate...)
	require.NoError(f.t, f.events.Publish(context.Background(), e.ID, f.admin))
	return f.reload(e.ID)
}

func (f *fixture) reload(id string) *models.Event {
	f.t.Helper()
	e, err := f.deps.Events.FindByID(context.Background(), id)
	require.NoError(f.t, err)
	return e
}

func (f *fixture) activitiesFor(entityID string) []models.Activity {
	f.t.Helper()
	acts, err := f.activities.ForEntity(context.Background(), f.admin, models.EntityEvent, entityID)
	require.NoError(f.t, err)
	return acts
}

func (f *fixture) countActions(entityID string, action models.ActivityAction) int {
	n := 0
	for _, a := range f.activitiesFor(entityID) {
		if a.Action == action {
			n++
		}
	}
	return n
}
