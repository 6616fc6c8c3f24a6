package services

import (
	"context"
	"errors"
	"strings"

	"hotel-booking/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

type CreateRoomInput struct {
	Name         string
	Description  string
	Price        float64
	Capacity     int
	Amenities    []string
	Images       []string
	Availability *bool
}

func (s *RoomService) Create(ctx context.Context, in CreateRoomInput) (*models.Room, error) {
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return nil, invalidInput("room name is required")
	case in.Price < 0:
		return nil, invalidInput("price must not be negative")
	case in.Capacity < 0:
		return nil, invalidInput("capacity must not be negative")
	}

	room := &models.Room{
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		Price:        in.Price,
		Capacity:     in.Capacity,
		Amenities:    datatypes.JSONSlice[string](in.Amenities),
		Images:       datatypes.JSONSlice[string](in.Images),
		Availability: true,
	}
	if in.Availability != nil {
		room.Availability = *in.Availability
	}

	if err := s.DB.WithContext(ctx).Create(room).Error; err != nil {
		return nil, storeFailure("create room", err)
	}
	return room, nil
}

// List returns the summary fields shown in the room catalogue.
func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	rooms := []models.Room{}
	err := s.DB.WithContext(ctx).
		Select("id", "name", "price", "capacity", "availability", "created_at").
		Order("created_at ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, storeFailure("retrieve rooms", err)
	}
	return rooms, nil
}

func (s *RoomService) Get(ctx context.Context, id string) (*models.Room, error) {
	return s.FindRoom(ctx, id)
}

// FindRoom is the room-existence check consumed by the booking manager.
func (s *RoomService) FindRoom(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).Where("id = ?", id).Take(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("room not found")
		}
		return nil, storeFailure("retrieve room", err)
	}
	return &room, nil
}
