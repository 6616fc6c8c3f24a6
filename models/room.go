package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Room struct {
	ID string `gorm:"primaryKey;type:varchar(36)" json:"id"`

	Name         string                      `gorm:"size:120" json:"name"`
	Description  string                      `gorm:"type:text" json:"description,omitempty"`
	Price        float64                     `json:"price"`
	Capacity     int                         `json:"capacity"`
	Amenities    datatypes.JSONSlice[string] `json:"amenities,omitempty"`
	Images       datatypes.JSONSlice[string] `json:"images,omitempty"`
	Availability bool                        `json:"availability"`

	CreatedAt time.Time `json:"createdAt"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = newID()
	}
	return nil
}
