package controllers

import (
	"net/http"

	"hotel-booking/services"

	"github.com/gin-gonic/gin"
)

type recordPaymentPayload struct {
	UserID        string  `json:"userId" binding:"required,uuid"`
	BookingID     string  `json:"bookingId" binding:"omitempty,uuid"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Method        string  `json:"method" binding:"required"`
	TransactionID string  `json:"transactionId" binding:"required"`
}

type PaymentController struct {
	Payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{Payments: payments}
}

func (ctrl *PaymentController) GetMethods(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.Payments.Methods())
}

func (ctrl *PaymentController) RecordPayment(c *gin.Context) {
	var payload recordPaymentPayload
	if err := bindStrict(c, &payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}

	payment, err := ctrl.Payments.Record(c.Request.Context(), services.RecordPaymentInput{
		UserID:        payload.UserID,
		BookingID:     payload.BookingID,
		Amount:        payload.Amount,
		Method:        payload.Method,
		TransactionID: payload.TransactionID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Payment successful", "payment": payment})
}
