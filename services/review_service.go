package services

import (
	"context"
	"strings"

	"hotel-booking/models"

	"gorm.io/gorm"
)

const (
	minRating = 1
	maxRating = 5
)

type ReviewService struct {
	DB    *gorm.DB
	Users UserFinder
	Rooms RoomFinder
}

func NewReviewService(db *gorm.DB, users UserFinder, rooms RoomFinder) *ReviewService {
	return &ReviewService{DB: db, Users: users, Rooms: rooms}
}

type CreateReviewInput struct {
	UserID  string
	RoomID  string
	Rating  int
	Comment string
}

func (s *ReviewService) Create(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	if in.Rating < minRating || in.Rating > maxRating {
		return nil, invalidInput("rating must be between %d and %d", minRating, maxRating)
	}
	if _, err := s.Users.FindUser(ctx, in.UserID); err != nil {
		return nil, err
	}
	if _, err := s.Rooms.FindRoom(ctx, in.RoomID); err != nil {
		return nil, err
	}

	review := &models.Review{
		UserID:  in.UserID,
		RoomID:  in.RoomID,
		Rating:  in.Rating,
		Comment: strings.TrimSpace(in.Comment),
	}
	if err := s.DB.WithContext(ctx).Create(review).Error; err != nil {
		return nil, storeFailure("submit review", err)
	}
	return review, nil
}

// ListByRoom returns a room's reviews newest first with the author's name and email.
func (s *ReviewService) ListByRoom(ctx context.Context, roomID string) ([]models.Review, error) {
	reviews := []models.Review{}
	err := s.DB.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, storeFailure("retrieve reviews", err)
	}
	return reviews, nil
}
