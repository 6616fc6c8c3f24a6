package controllers

import (
	"net/http"

	"hotel-booking/services"

	"github.com/gin-gonic/gin"
)

type createRoomPayload struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Price        float64  `json:"price" binding:"gte=0"`
	Capacity     int      `json:"capacity" binding:"gte=0"`
	Amenities    []string `json:"amenities"`
	Images       []string `json:"images"`
	Availability *bool    `json:"availability"`
}

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{Rooms: rooms}
}

// ----------------------------------------------------
// Create Room (POST /api/rooms)
// ----------------------------------------------------

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var payload createRoomPayload
	if err := bindStrict(c, &payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}

	room, err := ctrl.Rooms.Create(c.Request.Context(), services.CreateRoomInput{
		Name:         payload.Name,
		Description:  payload.Description,
		Price:        payload.Price,
		Capacity:     payload.Capacity,
		Amenities:    payload.Amenities,
		Images:       payload.Images,
		Availability: payload.Availability,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// ----------------------------------------------------
// Get Rooms (GET /api/rooms, GET /api/rooms/:id)
// ----------------------------------------------------

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.Rooms.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	room, err := ctrl.Rooms.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}
