package movie

import (
	"errors"
	"time"
)

type Movie struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Director    string    `json:"director"`
	ReleaseYear int       `json:"releaseYear"`
	Genre       string    `json:"genre"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var (
	ErrNotFound  = errors.New("movie not found")
	ErrInvalidID = errors.New("invalid movie id")
)

// all four fields are mandatory on both create and full update
type CreateMovieRequest struct {
	Title       string `json:"title" binding:"required"`
	Director    string `json:"director" binding:"required"`
	ReleaseYear int    `json:"releaseYear" binding:"required"`
	Genre       string `json:"genre" binding:"required"`
}

type UpdateMovieRequest struct {
	Title       string `json:"title" binding:"required"`
	Director    string `json:"director" binding:"required"`
	ReleaseYear int    `json:"releaseYear" binding:"required"`
	Genre       string `json:"genre" binding:"required"`
}

// DeleteResult reports how the cascade went even when the movie itself
// was missing (the review sweep is always attempted).
type DeleteResult struct {
	MovieDeleted   bool
	ReviewsDeleted int
}
