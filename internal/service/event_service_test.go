package service

import (
	"context"
	"testing"

	"github.com/Kusalkumar06/eventia/internal/apperr"
	"github.com/Kusalkumar06/eventia/internal/auth"
	"github.com/Kusalkumar06/eventia/internal/models"
	"github.com/Kusalkumar06/eventia/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEvent_Success(t *testing.T) {
	f := newFixture(t)

	event, err := f.events.Create(context.Background(), f.input(), f.organizer)

	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "go-meetup", event.Slug)
	assert.Equal(t, models.StatusDraft, event.Status)
	assert.Equal(t, 0, event.RegistrationsCount)
	assert.Equal(t, f.organizer.ID, event.OrganizerID)
	assert.Equal(t, 1, f.countActions(event.ID, models.ActionEventCreated))
	assert.ElementsMatch(t, []string{TagAdminEvents, TagOrganizerEvents(f.organizer.ID)}, f.cache.last())
}

func TestCreateEvent_SlugCollision(t *testing.T) {
	f := newFixture(t)

	first := f.draftEvent()
	second := f.draftEvent()
	third := f.draftEvent()

	assert.Equal(t, "go-meetup", first.Slug)
	assert.Equal(t, "go-meetup-1", second.Slug)
	assert.Equal(t, "go-meetup-2", third.Slug)
}

func TestCreateEvent_Roles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.events.Create(ctx, f.input(), auth.Principal{})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.events.Create(ctx, f.input(), f.newUser(models.RoleUser))
	assert.ErrorIs(t, err, ErrOrganizerRoleRequired)

	_, err = f.events.Create(ctx, f.input(), f.admin)
	assert.NoError(t, err)
}

func TestCreateEvent_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(*EventInput)
		want   error
	}{
		{"missing title", func(in *EventInput) { in.Title = "  " }, nil},
		{"short description", func(in *EventInput) { in.Description = "short" }, nil},
		{"unknown mode", func(in *EventInput) { in.Mode = "hybrid" }, nil},
		{"end before start", func(in *EventInput) { in.EndDate = in.StartDate.Add(-1) }, nil},
		{"end equals start", func(in *EventInput) { in.EndDate = in.StartDate }, nil},
		{"online without url", func(in *EventInput) { in.OnlineURL = "" }, nil},
		{"bad url", func(in *EventInput) { in.OnlineURL = "not a url" }, nil},
		{"offline without city", func(in *EventInput) { in.Mode = models.ModeOffline }, nil},
		{"capacity missing", func(in *EventInput) { in.MaxRegistrations = nil }, nil},
		{"capacity zero", func(in *EventInput) { in.MaxRegistrations = intPtr(0) }, nil},
		{"capacity negative", func(in *EventInput) { in.MaxRegistrations = intPtr(-3) }, nil},
		{"custom label on regular category", func(in *EventInput) { in.CustomCategory = "Meetups" }, nil},
		{"others without label", func(in *EventInput) { in.CategoryID = f.others.ID }, nil},
		{"others with short label", func(in *EventInput) { in.CategoryID = f.others.ID; in.CustomCategory = "ab" }, nil},
		{"unknown category", func(in *EventInput) { in.CategoryID = "missing" }, ErrCategoryNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.events.Create(context.Background(), f.input(tt.mutate), f.organizer)
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				return
			}
			assert.Equal(t, apperr.Validation, apperr.KindOf(err), err.Error())
		})
	}
}

func TestCreateEvent_Normalizes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	offline, err := f.events.Create(ctx, f.input(func(in *EventInput) {
		in.Mode = models.ModeOffline
		in.Location = models.Location{City: " Pune ", Venue: "Hall A"}
		in.CategoryID = f.others.ID
		in.CustomCategory = "Hackathon"
	}), f.organizer)
	require.NoError(t, err)
	assert.Empty(t, offline.OnlineURL)
	assert.Equal(t, "Pune", offline.Location.City)
	assert.Equal(t, "Hackathon", offline.CustomCategory)

	free, err := f.events.Create(ctx, f.input(func(in *EventInput) {
		in.IsRegistrationRequired = false
		in.MaxRegistrations = intPtr(10)
		in.Location = models.Location{City: "Ignored"}
	}), f.organizer)
	require.NoError(t, err)
	assert.Nil(t, free.MaxRegistrations)
	assert.Empty(t, free.Location.City)
}

func TestPublishEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := f.draftEvent()
	f.cache.reset()

	require.NoError(t, f.events.Publish(ctx, event.ID, f.admin))

	got := f.reload(event.ID)
	assert.Equal(t, models.StatusPublished, got.Status)
	assert.Nil(t, got.RejectionReason)
	assert.Contains(t, f.notifier.recipients(), f.emailOf(f.organizer))
	assert.ElementsMatch(t, []string{TagAdminEvents, TagOrganizerEvents(f.organizer.ID), TagPublicEvents, "event:" + event.Slug}, f.cache.last())
}

// Scenario: publishing an already-published event.
func TestPublishEvent_AlreadyPublished(t *testing.T) {
	f := newFixture(t)
	event := f.publishedEvent()

	err := f.events.Publish(context.Background(), event.ID, f.admin)

	assert.ErrorIs(t, err, ErrNotPublishable)
	assert.Equal(t, "Only draft or pending events can be published", apperr.PublicMessage(err))
	assert.Equal(t, models.StatusPublished, f.reload(event.ID).Status)
	assert.Equal(t, 1, f.countActions(event.ID, models.ActionEventPublished))
}

func TestPublishEvent_RequiresAdmin(t *testing.T) {
	f := newFixture(t)
	event := f.draftEvent()

	err := f.events.Publish(context.Background(), event.ID, f.organizer)

	assert.ErrorIs(t, err, ErrAdminOnly)
	assert.Equal(t, models.StatusDraft, f.reload(event.ID).Status)
}

func TestRejectEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := f.draftEvent()

	err := f.events.Reject(ctx, event.ID, "  too vague!  ", f.admin)
	require.NoError(t, err, "trimmed reason is exactly ten characters")

	got := f.reload(event.ID)
	assert.Equal(t, models.StatusRejected, got.Status)
	require.NotNil(t, got.RejectionReason)
	assert.Equal(t, "too vague!", *got.RejectionReason)
}

func TestRejectEvent_Rules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := f.draftEvent()
	published := f.publishedEvent()

	err := f.events.Reject(ctx, draft.ID, "   nope    ", f.admin)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	err = f.events.Reject(ctx, draft.ID, "Missing venue details", f.organizer)
	assert.ErrorIs(t, err, ErrAdminOnly)

	err = f.events.Reject(ctx, published.ID, "Missing venue details", f.admin)
	assert.ErrorIs(t, err, ErrNotRejectable)
	assert.Equal(t, models.StatusPublished, f.reload(published.ID).Status)
}

// Scenario: editing a rejected event sends it back to draft.
func TestUpdateEvent_ResubmitsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := f.draftEvent()
	require.NoError(t, f.events.Reject(ctx, event.ID, "Missing venue details", f.admin))

	updated, err := f.events.Update(ctx, event.ID, f.input(func(in *EventInput) { in.Title = "Go Meetup v2" }), f.organizer)

	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, updated.Status)
	got := f.reload(event.ID)
	assert.Equal(t, models.StatusDraft, got.Status)
	assert.Nil(t, got.RejectionReason)
	assert.Equal(t, "Go Meetup v2", got.Title)
	assert.Equal(t, event.Slug, got.Slug, "slug is stable across edits")

	// Back in draft, the event can be published.
	require.NoError(t, f.events.Publish(ctx, event.ID, f.admin))
}

func TestUpdateEvent_CapacityBelowCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := f.publishedEvent(func(in *EventInput) { in.MaxRegistrations = intPtr(3) })
	for i := 0; i < 2; i++ {
		_, err := f.registrations.Register(ctx, event.ID, f.newUser(models.RoleUser))
		require.NoError(t, err)
	}

	_, err := f.events.Update(ctx, event.ID, f.input(func(in *EventInput) { in.MaxRegistrations = intPtr(1) }), f.organizer)
	assert.ErrorIs(t, err, ErrCapacityBelowCount)
	assert.Equal(t, 3, *f.reload(event.ID).MaxRegistrations)

	_, err = f.events.Update(ctx, event.ID, f.input(func(in *EventInput) { in.MaxRegistrations = intPtr(2) }), f.organizer)
	require.NoError(t, err)
	got := f.reload(event.ID)
	assert.Equal(t, 2, *got.MaxRegistrations)
	assert.Equal(t, 2, got.RegistrationsCount)
	assert.Equal(t, models.StatusPublished, got.Status)
}

func TestUpdateEvent_Rules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := f.publishedEvent()
	require.NoError(t, f.events.Cancel(ctx, event.ID, f.organizer))
	draft := f.draftEvent()
	stranger := f.newUser(models.RoleOrganizer)

	_, err := f.events.Update(ctx, event.ID, f.input(), f.organizer)
	assert.ErrorIs(t, err, ErrNotEditable)

	_, err = f.events.Update(ctx, draft.ID, f.input(), stranger)
	assert.ErrorIs(t, err, ErrNotEventOwner)

	_, err = f.events.Update(ctx, "missing", f.input(), f.organizer)
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = f.events.Update(ctx, draft.ID, f.input(func(in *EventInput) { in.Title = "" }), f.organizer)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = f.events.Update(ctx, draft.ID, f.input(func(in *EventInput) { in.Title = "Admin edit" }), f.admin)
	assert.NoError(t, err)
}

// Scenario: cancelling a draft.
func TestCancelEvent_Draft(t *testing.T) {
	f := newFixture(t)
	event := f.draftEvent()

	err := f.events.Cancel(context.Background(), event.ID, f.organizer)

	assert.ErrorIs(t, err, ErrNotCancellable)
	assert.Equal(t, models.StatusDraft, f.reload(event.ID).Status)
}

func TestCancelEvent_NotifiesRegistrants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := f.publishedEvent()
	a, b := f.newUser(models.RoleUser), f.newUser(models.RoleUser)
	for _, u := range []auth.Principal{a, b} {
		_, err := f.registrations.Register(ctx, event.ID, u)
		require.NoError(t, err)
	}
	f.cache.reset()

	require.NoError(t, f.events.Cancel(ctx, event.ID, f.admin))

	assert.Equal(t, models.StatusCancelled, f.reload(event.ID).Status)
	assert.Subset(t, f.notifier.recipients(), []string{f.emailOf(a), f.emailOf(b)})
	assert.Contains(t, f.cache.last(), TagPublicEvents)
	assert.Contains(t, f.cache.last(), "event:"+event.Slug)

	err := f.events.Cancel(ctx, event.ID, f.admin)
	assert.ErrorIs(t, err, ErrNotCancellable)
}

func TestDeleteEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	published := f.publishedEvent()
	draft := f.draftEvent()

	err := f.events.Delete(ctx, published.ID, f.organizer)
	assert.ErrorIs(t, err, ErrNotDeletable)

	require.NoError(t, f.events.Delete(ctx, draft.ID, f.organizer))
	_, err = f.events.Get(ctx, draft.ID, f.organizer)
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.Equal(t, 1, f.countActions(draft.ID, models.ActionEventDeleted))
}

func TestGetEvent_Visibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := f.draftEvent()
	published := f.publishedEvent()

	_, err := f.events.Get(ctx, draft.ID, auth.Principal{})
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = f.events.GetBySlug(ctx, draft.Slug, f.newUser(models.RoleUser))
	assert.ErrorIs(t, err, ErrEventNotFound)

	got, err := f.events.Get(ctx, draft.ID, f.organizer)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)

	_, err = f.events.Get(ctx, draft.ID, f.admin)
	assert.NoError(t, err)

	got, err = f.events.GetBySlug(ctx, published.Slug, auth.Principal{})
	require.NoError(t, err)
	assert.Equal(t, published.ID, got.ID)
}

func TestListEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.draftEvent()
	f.publishedEvent()
	f.publishedEvent()

	public, err := f.events.ListPublished(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, public, 2)

	mine, err := f.events.ListForOrganizer(ctx, f.organizer)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	drafts, err := f.events.ListForAdmin(ctx, f.admin, EventListFilter{Status: models.StatusDraft})
	require.NoError(t, err)
	assert.Len(t, drafts, 1)

	_, err = f.events.ListForAdmin(ctx, f.organizer, EventListFilter{})
	assert.ErrorIs(t, err, ErrAdminOnly)
}

// Every successful state change leaves exactly one audit entry; failed ones leave none.
func TestAuditTrail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.newUser(models.RoleUser)

	event := f.draftEvent()
	_, err := f.events.Update(ctx, event.ID, f.input(func(in *EventInput) { in.Title = "Renamed" }), f.organizer)
	require.NoError(t, err)
	require.NoError(t, f.events.Publish(ctx, event.ID, f.admin))
	assert.Error(t, f.events.Publish(ctx, event.ID, f.admin))
	_, err = f.registrations.Register(ctx, event.ID, user)
	require.NoError(t, err)
	require.NoError(t, f.registrations.Unregister(ctx, event.ID, user))
	assert.Error(t, f.registrations.Unregister(ctx, event.ID, user))
	require.NoError(t, f.events.Cancel(ctx, event.ID, f.organizer))

	want := map[models.ActivityAction]int{
		models.ActionEventCreated:      1,
		models.ActionEventUpdated:      1,
		models.ActionEventPublished:    1,
		models.ActionEventRegistered:   1,
		models.ActionEventUnregistered: 1,
		models.ActionEventCancelled:    1,
	}
	got := map[models.ActivityAction]int{}
	for _, a := range f.activitiesFor(event.ID) {
		got[a.Action]++
		assert.Equal(t, models.EntityEvent, a.EntityType)
		assert.NotEmpty(t, a.ActorID)
		assert.NotEmpty(t, a.Message)
	}
	assert.Equal(t, want, got)
}

// disconnectingEvents cancels the request context right after a status
// transition commits.
type disconnectingEvents struct {
	repository.EventRepository
	cancel context.CancelFunc
}

func (r disconnectingEvents) TransitionStatus(ctx context.Context, id string, from []models.EventStatus, to models.EventStatus, reason *string) (bool, error) {
	ok, err := r.EventRepository.TransitionStatus(ctx, id, from, to, reason)
	r.cancel()
	return ok, err
}

func TestPublishEvent_CancelledRequestStillAudits(t *testing.T) {
	f := newFixture(t)
	event := f.draftEvent()
	f.cache.reset()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.deps.Events = disconnectingEvents{EventRepository: f.deps.Events, cancel: cancel}
	f.rebuild()

	require.NoError(t, f.events.Publish(ctx, event.ID, f.admin))

	assert.Equal(t, models.StatusPublished, f.reload(event.ID).Status)
	assert.Equal(t, 1, f.countActions(event.ID, models.ActionEventPublished))
	assert.Contains(t, f.notifier.recipients(), f.emailOf(f.organizer))
	assert.Contains(t, f.cache.last(), "event:"+event.Slug)
}
