package controllers

import (
	"net/http"

	"hotel-booking/services"

	"github.com/gin-gonic/gin"
)

type reviewPayload struct {
	UserID  string `json:"userId" binding:"required,uuid"`
	RoomID  string `json:"roomId" binding:"required,uuid"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type ReviewController struct {
	Reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{Reviews: reviews}
}

func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	var payload reviewPayload
	if err := bindStrict(c, &payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}

	review, err := ctrl.Reviews.Create(c.Request.Context(), services.CreateReviewInput{
		UserID:  payload.UserID,
		RoomID:  payload.RoomID,
		Rating:  payload.Rating,
		Comment: payload.Comment,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review submitted successfully", "review": review})
}

func (ctrl *ReviewController) GetReviews(c *gin.Context) {
	roomID, ok := pathID(c, "roomId")
	if !ok {
		return
	}
	reviews, err := ctrl.Reviews.ListByRoom(c.Request.Context(), roomID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
