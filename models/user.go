package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID string `gorm:"primaryKey;type:varchar(36)" json:"id"`

	Name     string `gorm:"size:120" json:"name"`
	Email    string `gorm:"size:191;uniqueIndex" json:"email"`
	Password string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = newID()
	}
	return nil
}
