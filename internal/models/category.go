package models

import "time"

// OthersCategorySlug marks the category whose events carry a free-form label.
const OthersCategorySlug = "others"

type Category struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Slug      string    `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Category) IsOthers() bool {
	return c.Slug == OthersCategorySlug
}
