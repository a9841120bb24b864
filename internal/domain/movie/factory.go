package movie

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(req CreateMovieRequest) Movie {
	now := time.Now()

	return Movie{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Director:    req.Director,
		ReleaseYear: req.ReleaseYear,
		Genre:       req.Genre,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
