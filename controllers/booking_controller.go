// controllers/booking_controller.go
package controllers

import (
	"errors"
	"net/http"

	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingRequest struct {
	UserID       string   `json:"userId" binding:"required,uuid"`
	RoomID       string   `json:"roomId" binding:"required,uuid"`
	CheckInDate  string   `json:"checkInDate" binding:"required,isodate"`
	CheckOutDate string   `json:"checkOutDate" binding:"required,isodate"`
	Guests       int      `json:"guests" binding:"required,gt=0"`
	TotalPrice   *float64 `json:"totalPrice" binding:"required,gte=0"`
}

// UpdateBookingRequest fields are all optional; omitted ones keep their value.
type UpdateBookingRequest struct {
	CheckInDate  *string  `json:"checkInDate" binding:"omitempty,isodate"`
	CheckOutDate *string  `json:"checkOutDate" binding:"omitempty,isodate"`
	Guests       *int     `json:"guests" binding:"omitempty,gt=0"`
	TotalPrice   *float64 `json:"totalPrice" binding:"omitempty,gte=0"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	utils.RegisterValidators()
	return &BookingController{BookingSvc: svc}
}

// ---------------------------
// 1) Create Booking (POST /api/bookings)
// ---------------------------

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := bindStrict(c, &req); err != nil {
		respondInvalidPayload(c, err)
		return
	}

	checkIn, err := utils.ParseDate(req.CheckInDate)
	if err != nil {
		respondInvalidPayload(c, err)
		return
	}
	checkOut, err := utils.ParseDate(req.CheckOutDate)
	if err != nil {
		respondInvalidPayload(c, err)
		return
	}

	booking, err := ctrl.BookingSvc.Create(c.Request.Context(), services.CreateBookingInput{
		UserID:       req.UserID,
		RoomID:       req.RoomID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Guests:       req.Guests,
		TotalPrice:   *req.TotalPrice,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Room booked successfully", "booking": booking})
}

// ---------------------------
// 2) List / Get Bookings
// ---------------------------

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (ctrl *BookingController) GetBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ---------------------------
// 3) Update Booking (PUT /api/bookings/:id)
// ---------------------------

func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := bindStrict(c, &req); err != nil && !errors.Is(err, errEmptyBody) {
		respondInvalidPayload(c, err)
		return
	}

	checkIn, err := parseOptionalDate(req.CheckInDate)
	if err != nil {
		respondInvalidPayload(c, err)
		return
	}
	checkOut, err := parseOptionalDate(req.CheckOutDate)
	if err != nil {
		respondInvalidPayload(c, err)
		return
	}

	booking, err := ctrl.BookingSvc.Update(c.Request.Context(), id, services.UpdateBookingInput{
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Guests:       req.Guests,
		TotalPrice:   req.TotalPrice,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking updated successfully", "booking": booking})
}

// ---------------------------
// 4) Cancel / Delete
// ---------------------------

func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.Cancel(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking canceled", "booking": booking})
}

func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.BookingSvc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
