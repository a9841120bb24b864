package review

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        string    `json:"id"`
	MovieID   string    `json:"movieId"`
	UserID    string    `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var (
	ErrNotFound  = errors.New("review not found")
	ErrInvalidID = errors.New("invalid review id")
)

type CreateReviewRequest struct {
	MovieID string `json:"movieId" binding:"required"`
	UserID  string `json:"userId" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

// partial update: only rating and comment may change
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

// A factory to build a Review from the incoming DTO

func NewFromCreateRequest(req CreateReviewRequest) Review {
	now := time.Now()

	return Review{
		ID:        uuid.NewString(),
		MovieID:   req.MovieID,
		UserID:    req.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
