package models

import (
	"time"

	"gorm.io/gorm"
)

var PaymentMethods = []string{"Credit Card", "Debit Card", "UPI", "PayPal"}

func IsPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

const (
	PaymentRecordPending   = "Pending"
	PaymentRecordCompleted = "Completed"
	PaymentRecordFailed    = "Failed"
)

type Payment struct {
	ID string `gorm:"primaryKey;type:varchar(36)" json:"id"`

	UserID    string  `gorm:"column:user_id;type:varchar(36);index" json:"userId"`
	BookingID *string `gorm:"column:booking_id;type:varchar(36);index" json:"bookingId,omitempty"`

	Amount        float64 `json:"amount"`
	Method        string  `gorm:"size:32" json:"method"`
	Status        string  `gorm:"size:16;default:Pending" json:"status"`
	TransactionID string  `gorm:"column:transaction_id;size:128;uniqueIndex" json:"transactionId"`

	CreatedAt time.Time `json:"createdAt"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = newID()
	}
	return nil
}
