package models

import (
	"time"

	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCanceled  BookingStatus = "Canceled"
)

var validNext = map[BookingStatus]map[BookingStatus]bool{
	BookingPending:   {BookingConfirmed: true, BookingCanceled: true},
	BookingConfirmed: {BookingCanceled: true},
	BookingCanceled:  {},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to BookingStatus) bool {
	return validNext[from][to]
}

type Booking struct {
	ID string `gorm:"primaryKey;type:varchar(36)" json:"id"`

	UserID string `gorm:"column:user_id;type:varchar(36);index" json:"userId"`
	RoomID string `gorm:"column:room_id;type:varchar(36);index" json:"roomId"`

	CheckInDate  time.Time `gorm:"column:check_in_date" json:"checkInDate"`
	CheckOutDate time.Time `gorm:"column:check_out_date" json:"checkOutDate"`
	Guests       int       `gorm:"column:guests" json:"guests"`
	TotalPrice   float64   `gorm:"column:total_price" json:"totalPrice"`

	PaymentStatus PaymentStatus `gorm:"column:payment_status;size:16;default:Pending" json:"paymentStatus"`
	BookingStatus BookingStatus `gorm:"column:booking_status;size:16;default:Confirmed" json:"bookingStatus"`

	CreatedAt time.Time `gorm:"column:created_at;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Room *Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = newID()
	}
	return nil
}

// Overlaps applies the inclusive-boundary test used for room availability:
// a checkout on the same day as another stay's check-in still collides.
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return Overlaps(b.CheckInDate, b.CheckOutDate, checkIn, checkOut)
}

func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return !aIn.After(bOut) && !aOut.Before(bIn)
}

// Active reports whether the booking still holds its dates.
func (b *Booking) Active() bool {
	return b.BookingStatus != BookingCanceled
}
