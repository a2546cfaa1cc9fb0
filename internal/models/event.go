package models

import "time"

type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusPublished EventStatus = "published"
	StatusRejected  EventStatus = "rejected"
	StatusCancelled EventStatus = "cancelled"
)

type EventMode string

const (
	ModeOnline  EventMode = "online"
	ModeOffline EventMode = "offline"
)

type Location struct {
	City    string `gorm:"size:120" json:"city,omitempty"`
	Venue   string `gorm:"size:200" json:"venue,omitempty"`
	Address string `gorm:"size:300" json:"address,omitempty"`
}

type Event struct {
	ID                     string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	Slug                   string      `gorm:"size:200;not null;uniqueIndex" json:"slug"`
	Title                  string      `gorm:"size:200;not null" json:"title"`
	Description            string      `gorm:"type:text;not null" json:"description"`
	CategoryID             string      `gorm:"type:varchar(36);not null;index" json:"category_id"`
	CustomCategory         string      `gorm:"size:100" json:"custom_category,omitempty"`
	Mode                   EventMode   `gorm:"type:varchar(10);not null" json:"mode"`
	Location               Location    `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	OnlineURL              string      `gorm:"size:500" json:"online_url,omitempty"`
	StartDate              time.Time   `gorm:"not null" json:"start_date"`
	EndDate                time.Time   `gorm:"not null;index" json:"end_date"`
	OrganizerID            string      `gorm:"type:varchar(36);not null;index" json:"organizer_id"`
	Status                 EventStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	RejectionReason        *string     `gorm:"type:text" json:"rejection_reason"`
	IsRegistrationRequired bool        `gorm:"not null;default:false" json:"is_registration_required"`
	MaxRegistrations       *int        `json:"max_registrations"`
	RegistrationsCount     int         `gorm:"not null;default:0" json:"registrations_count"`
	CreatedAt              time.Time   `json:"created_at"`
	UpdatedAt              time.Time   `json:"updated_at"`
}

// SeatsLeft returns -1 when the event has no capacity limit.
func (e *Event) SeatsLeft() int {
	if e.MaxRegistrations == nil {
		return -1
	}
	left := *e.MaxRegistrations - e.RegistrationsCount
	if left < 0 {
		return 0
	}
	return left
}

func (e *Event) OwnedBy(userID string) bool {
	return userID != "" && e.OrganizerID == userID
}
