package models

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

var roleRank = map[Role]int{
	RoleUser:      1,
	RoleOrganizer: 2,
	RoleAdmin:     3,
}

// AtLeast reports whether r grants every permission of min.
func (r Role) AtLeast(min Role) bool {
	rank, ok := roleRank[r]
	if !ok {
		return false
	}
	return rank >= roleRank[min]
}

func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

type OrganizerRequestStatus string

const (
	OrganizerRequestNone     OrganizerRequestStatus = "none"
	OrganizerRequestPending  OrganizerRequestStatus = "pending"
	OrganizerRequestApproved OrganizerRequestStatus = "approved"
	OrganizerRequestRejected OrganizerRequestStatus = "rejected"
)

type User struct {
	ID               string                 `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name             string                 `gorm:"size:120;not null" json:"name"`
	Email            string                 `gorm:"size:254;not null;uniqueIndex" json:"email"`
	Role             Role                   `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	OrganizerRequest OrganizerRequestStatus `gorm:"type:varchar(20);not null;default:'none'" json:"organizer_request"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}
