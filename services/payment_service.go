package services

import (
	"context"
	"log"
	"strings"

	"hotel-booking/events"
	"hotel-booking/models"

	"gorm.io/gorm"
)

type PaymentService struct {
	DB       *gorm.DB
	Users    UserFinder
	Bookings *BookingService
	Events   events.Publisher
}

func NewPaymentService(db *gorm.DB, users UserFinder, bookings *BookingService, publisher events.Publisher) *PaymentService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &PaymentService{DB: db, Users: users, Bookings: bookings, Events: publisher}
}

type RecordPaymentInput struct {
	UserID        string
	BookingID     string
	Amount        float64
	Method        string
	TransactionID string
}

func (s *PaymentService) Methods() []string {
	out := make([]string, len(models.PaymentMethods))
	copy(out, models.PaymentMethods)
	return out
}

// Record stores a completed payment. When it references a booking, the
// booking is marked Paid in the same transaction.
func (s *PaymentService) Record(ctx context.Context, in RecordPaymentInput) (*models.Payment, error) {
	txID := strings.TrimSpace(in.TransactionID)
	switch {
	case strings.TrimSpace(in.UserID) == "":
		return nil, invalidInput("userId is required")
	case in.Amount <= 0:
		return nil, invalidInput("amount must be greater than zero")
	case !models.IsPaymentMethod(in.Method):
		return nil, invalidInput("method must be one of %s", strings.Join(models.PaymentMethods, ", "))
	case txID == "":
		return nil, invalidInput("transactionId is required")
	}

	if _, err := s.Users.FindUser(ctx, in.UserID); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		UserID:        in.UserID,
		Amount:        in.Amount,
		Method:        in.Method,
		Status:        models.PaymentRecordCompleted,
		TransactionID: txID,
	}
	if bookingID := strings.TrimSpace(in.BookingID); bookingID != "" {
		payment.BookingID = &bookingID
	}

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Payment{}).Where("transaction_id = ?", txID).Count(&count).Error; err != nil {
			return storeFailure("check transaction id", err)
		}
		if count > 0 {
			return conflict("transaction %s already recorded", txID)
		}
		if payment.BookingID != nil {
			if _, err := s.Bookings.MarkPaid(tx, *payment.BookingID); err != nil {
				return err
			}
		}
		return storeFailure("record payment", tx.Create(payment).Error)
	})
	if txErr != nil {
		return nil, storeFailure("record payment", txErr)
	}

	log.Printf("payment %s recorded: user=%s amount=%.2f method=%s", payment.ID, payment.UserID, payment.Amount, payment.Method)
	key := payment.ID
	if payment.BookingID != nil {
		key = *payment.BookingID
	}
	if err := s.Events.Publish(ctx, events.EventPaymentRecorded, key, payment); err != nil {
		log.Printf("warning: failed to publish %s for payment %s: %v", events.EventPaymentRecorded, payment.ID, err)
	}
	return payment, nil
}
