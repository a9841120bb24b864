package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/filmgeek/moviehub/internal/config"
	"github.com/filmgeek/moviehub/internal/domain/movie"
	"github.com/filmgeek/moviehub/internal/domain/review"
	"github.com/gin-gonic/gin"
)

type MoviesStore interface {
	Create(ctx context.Context, req movie.CreateMovieRequest) (movie.Movie, error)
	List(ctx context.Context) ([]movie.Movie, error)
	GetByID(ctx context.Context, id string) (movie.Movie, error)
	Update(ctx context.Context, id string, req movie.UpdateMovieRequest) (movie.Movie, error)
	DeleteCascade(ctx context.Context, id string) (movie.DeleteResult, error)
}

type MovieReviewsLister interface {
	ListByMovie(ctx context.Context, movieID string) ([]review.Review, error)
}

type MoviesHandler struct {
	repo    MoviesStore
	reviews MovieReviewsLister
}

func NewMoviesHandler(repo MoviesStore, reviews MovieReviewsLister) *MoviesHandler {
	return &MoviesHandler{repo: repo, reviews: reviews}
}

func (h *MoviesHandler) CreateMovie(ctx *gin.Context) {
	var req movie.CreateMovieRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	m, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not create movie")
		return
	}

	ctx.JSON(http.StatusCreated, m)
}

func (h *MoviesHandler) ListMovies(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	movies, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list movies")
		return
	}

	ctx.JSON(http.StatusOK, movies)
}

func (h *MoviesHandler) GetMovieById(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	m, err := h.repo.GetByID(cctx, id)

	if err != nil {
		switch {
		case errors.Is(err, movie.ErrInvalidID):
			RespondInvalidID(ctx, "Invalid movie ID")
		case errors.Is(err, movie.ErrNotFound):
			RespondNotFound(ctx, "Movie not found")
		default:
			RespondInternal(ctx, "Could not fetch movie")
		}
		return
	}

	ctx.JSON(http.StatusOK, m)
}

func (h *MoviesHandler) UpdateMovie(ctx *gin.Context) {
	id := ctx.Param("id")

	var req movie.UpdateMovieRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	m, err := h.repo.Update(cctx, id, req)

	if err != nil {
		switch {
		case errors.Is(err, movie.ErrInvalidID):
			RespondInvalidID(ctx, "Invalid movie ID")
		case errors.Is(err, movie.ErrNotFound):
			RespondNotFound(ctx, "Movie not found")
		default:
			RespondInternal(ctx, "Could not update movie")
		}
		return
	}

	ctx.JSON(http.StatusOK, m)
}

// DeleteMovie removes the movie together with every review referencing it.
func (h *MoviesHandler) DeleteMovie(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	_, err := h.repo.DeleteCascade(cctx, id)

	if err != nil {
		switch {
		case errors.Is(err, movie.ErrInvalidID):
			RespondInvalidID(ctx, "Invalid movie ID")
		case errors.Is(err, movie.ErrNotFound):
			RespondNotFound(ctx, "Movie not found")
		default:
			RespondInternal(ctx, "Could not delete movie")
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Movie and associated reviews deleted successfully",
	})
}

func (h *MoviesHandler) ListMovieReviews(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	reviews, err := h.reviews.ListByMovie(cctx, id)

	if err != nil {
		if errors.Is(err, review.ErrInvalidID) {
			RespondInvalidID(ctx, "Invalid movie ID")
			return
		}

		RespondInternal(ctx, "Could not list reviews")
		return
	}

	// an empty result is reported as not found
	if len(reviews) == 0 {
		RespondNotFound(ctx, "No reviews found for this movie")
		return
	}

	ctx.JSON(http.StatusOK, reviews)
}
