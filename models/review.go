package models

import (
	"time"

	"gorm.io/gorm"
)

type Review struct {
	ID string `gorm:"primaryKey;type:varchar(36)" json:"id"`

	UserID string `gorm:"column:user_id;type:varchar(36);index" json:"userId"`
	RoomID string `gorm:"column:room_id;type:varchar(36);index" json:"roomId"`

	Rating  int    `json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"createdAt"`

	// only name and email are loaded when listing a room's reviews
	User *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = newID()
	}
	return nil
}
