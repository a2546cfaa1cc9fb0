// Package notification adapts the core's Notifier and CacheInvalidator
// onto the message bus. Both are fire-and-forget.
package notification

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const (
	RoutingKeyEmail           = "notification.email"
	RoutingKeyCacheInvalidate = "cache.invalidate"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type EmailMessage struct {
	To       string    `json:"to"`
	Subject  string    `json:"subject"`
	HTMLBody string    `json:"html_body"`
	QueuedAt time.Time `json:"queued_at"`
}

type CacheInvalidation struct {
	Tags []string  `json:"tags"`
	At   time.Time `json:"at"`
}

// EmailDispatcher queues email for the mail worker.
type EmailDispatcher struct {
	pub Publisher
	log *zerolog.Logger
}

func NewEmailDispatcher(pub Publisher, log *zerolog.Logger) *EmailDispatcher {
	return &EmailDispatcher{pub: pub, log: log}
}

func (d *EmailDispatcher) Send(ctx context.Context, to, subject, htmlBody string) bool {
	if to == "" {
		d.log.Warn().Str("subject", subject).Msg("email dropped: empty recipient")
		return false
	}
	msg := EmailMessage{To: to, Subject: subject, HTMLBody: htmlBody, QueuedAt: time.Now().UTC()}
	if err := d.pub.Publish(ctx, RoutingKeyEmail, msg); err != nil {
		d.log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("failed to queue email")
		return false
	}
	d.log.Debug().Str("to", to).Str("subject", subject).Msg("email queued")
	return true
}

// CacheBus broadcasts invalidated tags to whoever renders cached views.
type CacheBus struct {
	pub Publisher
	log *zerolog.Logger
}

func NewCacheBus(pub Publisher, log *zerolog.Logger) *CacheBus {
	return &CacheBus{pub: pub, log: log}
}

func (b *CacheBus) Invalidate(ctx context.Context, tags ...string) {
	if len(tags) == 0 {
		return
	}
	if err := b.pub.Publish(ctx, RoutingKeyCacheInvalidate, CacheInvalidation{Tags: tags, At: time.Now().UTC()}); err != nil {
		b.log.Warn().Err(err).Strs("tags", tags).Msg("failed to publish cache invalidation")
	}
}

// LogNotifier stands in when no broker is configured.
type LogNotifier struct {
	log *zerolog.Logger
}

func NewLogNotifier(log *zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(_ context.Context, to, subject, _ string) bool {
	n.log.Info().Str("to", to).Str("subject", subject).Msg("email (not sent, no broker)")
	return true
}

func (n *LogNotifier) Invalidate(_ context.Context, tags ...string) {
	n.log.Debug().Strs("tags", tags).Msg("cache invalidated")
}
