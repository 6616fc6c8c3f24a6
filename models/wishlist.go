package models

import (
	"time"

	"gorm.io/gorm"
)

type WishlistItem struct {
	ID string `gorm:"primaryKey;type:varchar(36)" json:"id"`

	UserID string `gorm:"column:user_id;type:varchar(36);uniqueIndex:idx_wishlist_user_room" json:"userId"`
	RoomID string `gorm:"column:room_id;type:varchar(36);uniqueIndex:idx_wishlist_user_room" json:"roomId"`

	AddedAt time.Time `gorm:"column:added_at;autoCreateTime" json:"addedAt"`

	Room *Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

func (WishlistItem) TableName() string {
	return "wishlists"
}

func (w *WishlistItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = newID()
	}
	return nil
}
