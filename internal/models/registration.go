package models

import "time"

type Registration struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_registration_user_event" json:"user_id"`
	EventID   string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_registration_user_event;index" json:"event_id"`
	CreatedAt time.Time `json:"created_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}
