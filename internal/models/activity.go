package models

import "time"

type ActivityAction string

const (
	ActionEventCreated       ActivityAction = "EVENT_CREATED"
	ActionEventUpdated       ActivityAction = "EVENT_UPDATED"
	ActionEventDeleted       ActivityAction = "EVENT_DELETED"
	ActionEventPublished     ActivityAction = "EVENT_PUBLISHED"
	ActionEventRejected      ActivityAction = "EVENT_REJECTED"
	ActionEventCancelled     ActivityAction = "EVENT_CANCELLED"
	ActionEventRegistered    ActivityAction = "EVENT_REGISTERED"
	ActionEventUnregistered  ActivityAction = "EVENT_UNREGISTERED"
	ActionOrganizerRequested ActivityAction = "ORGANIZER_REQUESTED"
	ActionOrganizerApproved  ActivityAction = "ORGANIZER_APPROVED"
	ActionOrganizerRejected  ActivityAction = "ORGANIZER_REJECTED"
)

type EntityType string

const (
	EntityEvent EntityType = "event"
	EntityUser  EntityType = "user"
)

// Activity is an append-only audit entry.
type Activity struct {
	ID         string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	ActorID    string         `gorm:"type:varchar(36);not null;index" json:"actor_id"`
	ActorRole  Role           `gorm:"type:varchar(20);not null" json:"actor_role"`
	Action     ActivityAction `gorm:"type:varchar(40);not null;index" json:"action"`
	EntityType EntityType     `gorm:"type:varchar(20);not null;index:idx_activity_entity" json:"entity_type"`
	EntityID   string         `gorm:"type:varchar(36);not null;index:idx_activity_entity" json:"entity_id"`
	Message    string         `gorm:"type:text" json:"message"`
	CreatedAt  time.Time      `gorm:"not null;index" json:"created_at"`
}
