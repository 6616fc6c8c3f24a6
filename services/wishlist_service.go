package services

import (
	"context"
	"errors"

	"hotel-booking/models"

	"gorm.io/gorm"
)

type WishlistService struct {
	DB    *gorm.DB
	Users UserFinder
	Rooms RoomFinder
}

func NewWishlistService(db *gorm.DB, users UserFinder, rooms RoomFinder) *WishlistService {
	return &WishlistService{DB: db, Users: users, Rooms: rooms}
}

// Add puts a room on the user's wishlist. Adding the same room twice returns
// the existing entry.
func (s *WishlistService) Add(ctx context.Context, userID, roomID string) (*models.WishlistItem, error) {
	if _, err := s.Users.FindUser(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.Rooms.FindRoom(ctx, roomID); err != nil {
		return nil, err
	}

	db := s.DB.WithContext(ctx)
	var existing models.WishlistItem
	err := db.Where("user_id = ? AND room_id = ?", userID, roomID).Take(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeFailure("check wishlist", err)
	}

	item := &models.WishlistItem{UserID: userID, RoomID: roomID}
	if err := db.Create(item).Error; err != nil {
		return nil, storeFailure("add to wishlist", err)
	}
	return item, nil
}

func (s *WishlistService) ListByUser(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	items := []models.WishlistItem{}
	err := s.DB.WithContext(ctx).
		Preload("Room").
		Where("user_id = ?", userID).
		Order("added_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, storeFailure("retrieve wishlist", err)
	}
	return items, nil
}
