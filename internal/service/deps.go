package service

import (
	"context"
	"time"

	"github.com/Kusalkumar06/eventia/internal/repository"
	"github.com/rs/zerolog"
)

// Deps groups the collaborators shared by the event, registration and user
// services. Nil Notifier, Cache and Activities fall back to no-ops.
type Deps struct {
	Events        repository.EventRepository
	Registrations repository.RegistrationRepository
	Users         repository.UserRepository
	Categories    repository.CategoryRepository
	Activities    ActivityService
	Notifier      Notifier
	Cache         CacheInvalidator
	Log           *zerolog.Logger
	Now           func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Notifier == nil {
		d.Notifier = NopNotifier{}
	}
	if d.Cache == nil {
		d.Cache = NopCache{}
	}
	if d.Activities == nil {
		d.Activities = nopActivities{}
	}
	if d.Log == nil {
		l := zerolog.Nop()
		d.Log = &l
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

const followUpTimeout = 5 * time.Second

// followUp returns a context for work that must run once the primary write
// has committed: counter bookkeeping, audit, notifications and cache
// invalidation. It keeps ctx's values but not its cancellation.
func followUp(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), followUpTimeout)
}

// notifyUser looks up the recipient and sends best-effort. Nothing here can
// fail the calling operation.
func (d Deps) notifyUser(ctx context.Context, userID, subject, body string) {
	user, err := d.Users.FindByID(ctx, userID)
	if err != nil {
		d.Log.Warn().Err(err).Str("user_id", userID).Msg("notification skipped: recipient lookup failed")
		return
	}
	d.send(ctx, user.Email, subject, body)
}

func (d Deps) send(ctx context.Context, to, subject, body string) {
	defer func() {
		if r := recover(); r != nil {
			d.Log.Error().Interface("panic", r).Str("subject", subject).Msg("notifier panicked")
		}
	}()
	if ok := d.Notifier.Send(ctx, to, subject, body); !ok {
		d.Log.Warn().Str("to", to).Str("subject", subject).Msg("notification was not accepted")
	}
}
