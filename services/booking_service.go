// services/booking_service.go
package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"hotel-booking/events"
	"hotel-booking/locks"
	"hotel-booking/models"
	"hotel-booking/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserFinder interface {
	FindUser(ctx context.Context, id string) (*models.User, error)
}

type RoomFinder interface {
	FindRoom(ctx context.Context, id string) (*models.Room, error)
}

// BookingService owns booking records: existence checks on the referenced
// user and room, date conflict detection and the booking lifecycle.
type BookingService struct {
	DB     *gorm.DB
	Users  UserFinder
	Rooms  RoomFinder
	Locker locks.Locker
	Events events.Publisher
	Now    func() time.Time
}

func NewBookingService(db *gorm.DB, users UserFinder, rooms RoomFinder, locker locks.Locker, publisher events.Publisher) *BookingService {
	if locker == nil {
		locker = locks.NewKeyedMutex()
	}
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &BookingService{
		DB:     db,
		Users:  users,
		Rooms:  rooms,
		Locker: locker,
		Events: publisher,
		Now:    time.Now,
	}
}

type CreateBookingInput struct {
	UserID       string
	RoomID       string
	CheckInDate  time.Time
	CheckOutDate time.Time
	Guests       int
	TotalPrice   float64
}

func (in CreateBookingInput) validate() error {
	switch {
	case strings.TrimSpace(in.UserID) == "":
		return invalidInput("userId is required")
	case strings.TrimSpace(in.RoomID) == "":
		return invalidInput("roomId is required")
	case in.CheckInDate.IsZero() || in.CheckOutDate.IsZero():
		return invalidInput("checkInDate and checkOutDate are required")
	case !in.CheckInDate.Before(in.CheckOutDate):
		return invalidInput("checkInDate must be before checkOutDate")
	case in.Guests <= 0:
		return invalidInput("guests must be a positive number")
	case in.TotalPrice < 0:
		return invalidInput("totalPrice must not be negative")
	}
	return nil
}

// UpdateBookingInput carries a partial update; nil fields are left unchanged.
type UpdateBookingInput struct {
	CheckInDate  *time.Time
	CheckOutDate *time.Time
	Guests       *int
	TotalPrice   *float64
}

func (in UpdateBookingInput) empty() bool {
	return in.CheckInDate == nil && in.CheckOutDate == nil && in.Guests == nil && in.TotalPrice == nil
}

func checkCapacity(room *models.Room, guests int) error {
	if room.Capacity > 0 && guests > room.Capacity {
		return invalidInput("room %s holds at most %d guests", room.Name, room.Capacity)
	}
	return nil
}

// Create books a room. The availability scan and the insert run under a
// per-room lock and inside one transaction holding the room row, so two
// overlapping requests cannot both succeed.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	in.CheckInDate = utils.StartOfDay(in.CheckInDate)
	in.CheckOutDate = utils.StartOfDay(in.CheckOutDate)
	if err := in.validate(); err != nil {
		return nil, err
	}

	if _, err := s.Users.FindUser(ctx, in.UserID); err != nil {
		return nil, err
	}
	room, err := s.Rooms.FindRoom(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	if err := checkCapacity(room, in.Guests); err != nil {
		return nil, err
	}

	unlock, err := s.Locker.Lock(ctx, in.RoomID)
	if err != nil {
		return nil, storeFailure("lock room "+in.RoomID, err)
	}
	defer unlock()

	booking := &models.Booking{
		UserID:        in.UserID,
		RoomID:        in.RoomID,
		CheckInDate:   in.CheckInDate,
		CheckOutDate:  in.CheckOutDate,
		Guests:        in.Guests,
		TotalPrice:    in.TotalPrice,
		PaymentStatus: models.PaymentPending,
		BookingStatus: models.BookingConfirmed,
		CreatedAt:     s.Now().UTC(),
	}

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRoomRow(tx, in.RoomID); err != nil {
			return err
		}
		if err := ensureAvailable(tx, in.RoomID, "", in.CheckInDate, in.CheckOutDate); err != nil {
			return err
		}
		return storeFailure("create booking", tx.Omit(clause.Associations).Create(booking).Error)
	})
	if txErr != nil {
		return nil, storeFailure("create booking", txErr)
	}

	log.Printf("booking %s created: room=%s %s..%s", booking.ID, booking.RoomID,
		booking.CheckInDate.Format(utils.DateLayout), booking.CheckOutDate.Format(utils.DateLayout))
	s.publish(ctx, events.EventBookingCreated, booking.ID, booking)
	return booking, nil
}

// List returns every booking with its user and room resolved.
func (s *BookingService) List(ctx context.Context) ([]models.Booking, error) {
	list := []models.Booking{}
	err := s.DB.WithContext(ctx).
		Preload("User").
		Preload("Room").
		Order("created_at ASC").
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, storeFailure("retrieve bookings", err)
	}
	return list, nil
}

func (s *BookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.WithContext(ctx).
		Preload("User").
		Preload("Room").
		Where("id = ?", id).
		Take(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("booking not found")
		}
		return nil, storeFailure("retrieve booking", err)
	}
	return &booking, nil
}

// Update applies a partial update. Changed dates are re-validated and
// re-checked against the room's other active bookings; canceled bookings
// are frozen.
func (s *BookingService) Update(ctx context.Context, id string, in UpdateBookingInput) (*models.Booking, error) {
	if in.Guests != nil && *in.Guests <= 0 {
		return nil, invalidInput("guests must be a positive number")
	}
	if in.TotalPrice != nil && *in.TotalPrice < 0 {
		return nil, invalidInput("totalPrice must not be negative")
	}

	current, err := loadBooking(s.DB.WithContext(ctx), id, false)
	if err != nil {
		return nil, err
	}
	if in.empty() {
		return current, nil
	}

	if in.Guests != nil {
		room, err := s.Rooms.FindRoom(ctx, current.RoomID)
		if err != nil {
			return nil, err
		}
		if err := checkCapacity(room, *in.Guests); err != nil {
			return nil, err
		}
	}

	unlock, err := s.Locker.Lock(ctx, current.RoomID)
	if err != nil {
		return nil, storeFailure("lock room "+current.RoomID, err)
	}
	defer unlock()

	var updated *models.Booking
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := loadBooking(tx, id, true)
		if err != nil {
			return err
		}
		if !booking.Active() {
			return conflict("booking is canceled and can no longer be changed")
		}

		checkIn, checkOut := booking.CheckInDate, booking.CheckOutDate
		if in.CheckInDate != nil {
			checkIn = utils.StartOfDay(*in.CheckInDate)
		}
		if in.CheckOutDate != nil {
			checkOut = utils.StartOfDay(*in.CheckOutDate)
		}
		if !checkIn.Before(checkOut) {
			return invalidInput("checkInDate must be before checkOutDate")
		}

		if !checkIn.Equal(booking.CheckInDate) || !checkOut.Equal(booking.CheckOutDate) {
			if err := lockRoomRow(tx, booking.RoomID); err != nil {
				return err
			}
			if err := ensureAvailable(tx, booking.RoomID, booking.ID, checkIn, checkOut); err != nil {
				return err
			}
		}

		booking.CheckInDate = checkIn
		booking.CheckOutDate = checkOut
		if in.Guests != nil {
			booking.Guests = *in.Guests
		}
		if in.TotalPrice != nil {
			booking.TotalPrice = *in.TotalPrice
		}
		err = tx.Model(booking).
			Select("check_in_date", "check_out_date", "guests", "total_price").
			Updates(booking).Error
		if err != nil {
			return storeFailure("update booking", err)
		}
		updated = booking
		return nil
	})
	if txErr != nil {
		return nil, storeFailure("update booking", txErr)
	}

	s.publish(ctx, events.EventBookingUpdated, updated.ID, updated)
	return updated, nil
}

// Cancel moves a booking to Canceled, which releases its dates. Canceled is terminal.
func (s *BookingService) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	var canceled *models.Booking
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := loadBooking(tx, id, true)
		if err != nil {
			return err
		}
		if !models.CanTransition(booking.BookingStatus, models.BookingCanceled) {
			return conflict("booking is already %s", strings.ToLower(string(booking.BookingStatus)))
		}
		if err := tx.Model(booking).Update("booking_status", models.BookingCanceled).Error; err != nil {
			return storeFailure("cancel booking", err)
		}
		booking.BookingStatus = models.BookingCanceled
		canceled = booking
		return nil
	})
	if txErr != nil {
		return nil, storeFailure("cancel booking", txErr)
	}

	log.Printf("booking %s canceled", canceled.ID)
	s.publish(ctx, events.EventBookingCanceled, canceled.ID, canceled)
	return canceled, nil
}

// Delete removes a booking permanently. Payments and reviews are left in place.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Booking{})
	if res.Error != nil {
		return storeFailure("delete booking", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("booking not found")
	}

	log.Printf("booking %s deleted", id)
	s.publish(ctx, events.EventBookingDeleted, id, map[string]string{"id": id})
	return nil
}

// MarkPaid flips the payment status inside the caller's transaction.
func (s *BookingService) MarkPaid(tx *gorm.DB, id string) (*models.Booking, error) {
	booking, err := loadBooking(tx, id, true)
	if err != nil {
		return nil, err
	}
	if !booking.Active() {
		return nil, conflict("cannot pay for a canceled booking")
	}
	if booking.PaymentStatus == models.PaymentPaid {
		return booking, nil
	}
	if err := tx.Model(booking).Update("payment_status", models.PaymentPaid).Error; err != nil {
		return nil, storeFailure("update payment status", err)
	}
	booking.PaymentStatus = models.PaymentPaid
	return booking, nil
}

func (s *BookingService) publish(ctx context.Context, eventType, key string, payload any) {
	if err := s.Events.Publish(ctx, eventType, key, payload); err != nil {
		log.Printf("warning: failed to publish %s for booking %s: %v", eventType, key, err)
	}
}

func loadBooking(tx *gorm.DB, id string, forUpdate bool) (*models.Booking, error) {
	q := tx
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var booking models.Booking
	if err := q.Where("id = ?", id).Take(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("booking not found")
		}
		return nil, storeFailure("retrieve booking", err)
	}
	return &booking, nil
}

// lockRoomRow takes the room row FOR UPDATE so concurrent writers on the same
// room queue up inside the database as well.
func lockRoomRow(tx *gorm.DB, roomID string) error {
	var room models.Room
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", roomID).
		Take(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("room not found")
	}
	return storeFailure("lock room", err)
}

// ensureAvailable scans the room's active bookings (except excludeID) for an
// overlap with [checkIn, checkOut].
func ensureAvailable(tx *gorm.DB, roomID, excludeID string, checkIn, checkOut time.Time) error {
	q := tx.Where("room_id = ? AND booking_status <> ?", roomID, models.BookingCanceled)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var existing []models.Booking
	if err := q.Find(&existing).Error; err != nil {
		return storeFailure("check room availability", err)
	}
	for i := range existing {
		if existing[i].Overlaps(checkIn, checkOut) {
			return conflict("room already booked for selected dates")
		}
	}
	return nil
}
