package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/filmgeek/moviehub/internal/config"
	"github.com/filmgeek/moviehub/internal/domain/review"
	"github.com/gin-gonic/gin"
)

type ReviewsStore interface {
	Create(ctx context.Context, req review.CreateReviewRequest) (review.Review, error)
	List(ctx context.Context) ([]review.Review, error)
	GetByID(ctx context.Context, id string) (review.Review, error)
	Update(ctx context.Context, id string, req review.UpdateReviewRequest) (review.Review, error)
	Delete(ctx context.Context, id string) error
}

type ReviewsHandler struct {
	repo ReviewsStore
}

func NewReviewsHandler(repo ReviewsStore) *ReviewsHandler {
	return &ReviewsHandler{repo: repo}
}

func (h *ReviewsHandler) CreateReview(ctx *gin.Context) {
	var req review.CreateReviewRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	r, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not create review")
		return
	}

	ctx.JSON(http.StatusCreated, r)
}

func (h *ReviewsHandler) ListReviews(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	reviews, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list reviews")
		return
	}

	ctx.JSON(http.StatusOK, reviews)
}

func (h *ReviewsHandler) GetReviewById(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	r, err := h.repo.GetByID(cctx, id)

	if err != nil {
		switch {
		case errors.Is(err, review.ErrInvalidID):
			RespondInvalidID(ctx, "Invalid review ID")
		case errors.Is(err, review.ErrNotFound):
			RespondNotFound(ctx, "Review not found")
		default:
			RespondInternal(ctx, "Could not fetch review")
		}
		return
	}

	ctx.JSON(http.StatusOK, r)
}

func (h *ReviewsHandler) UpdateReview(ctx *gin.Context) {
	id := ctx.Param("id")

	var req review.UpdateReviewRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	r, err := h.repo.Update(cctx, id, req)

	if err != nil {
		switch {
		case errors.Is(err, review.ErrInvalidID):
			RespondInvalidID(ctx, "Invalid review ID")
		case errors.Is(err, review.ErrNotFound):
			RespondNotFound(ctx, "Review not found")
		default:
			RespondInternal(ctx, "Could not update review")
		}
		return
	}

	ctx.JSON(http.StatusOK, r)
}

func (h *ReviewsHandler) DeleteReview(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		switch {
		case errors.Is(err, review.ErrInvalidID):
			RespondInvalidID(ctx, "Invalid review ID")
		case errors.Is(err, review.ErrNotFound):
			RespondNotFound(ctx, "Review not found")
		default:
			RespondInternal(ctx, "Could not delete review")
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Review deleted successfully",
	})
}
