package service

import (
	"context"
	"fmt"
)

// Notifier delivers email best-effort. false means the message was not
// accepted; callers log it and carry on.
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) bool
}

// CacheInvalidator drops cached views by tag. Fire-and-forget.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, tags ...string)
}

type NopNotifier struct{}

func (NopNotifier) Send(context.Context, string, string, string) bool { return true }

type NopCache struct{}

func (NopCache) Invalidate(context.Context, ...string) {}

const (
	TagAdminEvents  = "admin:events"
	TagPublicEvents = "events"
)

func TagOrganizerEvents(organizerID string) string {
	return fmt.Sprintf("organizer:%s:events", organizerID)
}

func TagEventDetail(slug string) string {
	return "event:" + slug
}

// managementTags are touched by create, update, reject and delete.
func managementTags(organizerID string) []string {
	return []string{TagAdminEvents, TagOrganizerEvents(organizerID)}
}

// publicTags are touched by publish and cancel.
func publicTags(organizerID, slug string) []string {
	return append(managementTags(organizerID), TagPublicEvents, TagEventDetail(slug))
}
