package controllers

import (
	"net/http"

	"hotel-booking/services"

	"github.com/gin-gonic/gin"
)

type wishlistPayload struct {
	UserID string `json:"userId" binding:"required,uuid"`
	RoomID string `json:"roomId" binding:"required,uuid"`
}

type WishlistController struct {
	Wishlist *services.WishlistService
}

func NewWishlistController(wishlist *services.WishlistService) *WishlistController {
	return &WishlistController{Wishlist: wishlist}
}

func (ctrl *WishlistController) AddToWishlist(c *gin.Context) {
	var payload wishlistPayload
	if err := bindStrict(c, &payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}

	item, err := ctrl.Wishlist.Add(c.Request.Context(), payload.UserID, payload.RoomID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Room added to wishlist", "wishlistItem": item})
}

func (ctrl *WishlistController) GetWishlist(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	items, err := ctrl.Wishlist.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wishlist": items})
}
