package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/filmgeek/moviehub/internal/domain/review"
	"github.com/filmgeek/moviehub/internal/utils"
)

type ReviewsRepo struct {
	mu    sync.RWMutex
	items map[string]review.Review
}

func NewReviewsRepo() *ReviewsRepo {
	return &ReviewsRepo{
		items: make(map[string]review.Review),
	}
}

func (r *ReviewsRepo) Create(ctx context.Context, req review.CreateReviewRequest) (review.Review, error) {
	rev := review.NewFromCreateRequest(req)

	r.mu.Lock()
	r.items[rev.ID] = rev
	r.mu.Unlock()

	return rev, nil
}

func (r *ReviewsRepo) List(ctx context.Context) ([]review.Review, error) {
	r.mu.RLock()
	out := make([]review.Review, 0, len(r.items))

	for _, rev := range r.items {
		out = append(out, rev)
	}
	r.mu.RUnlock()

	sortReviews(out)

	return out, nil
}

func (r *ReviewsRepo) ListByMovie(ctx context.Context, movieID string) ([]review.Review, error) {
	if !utils.IsUUID(movieID) {
		return nil, review.ErrInvalidID
	}

	r.mu.RLock()
	out := make([]review.Review, 0)

	for _, rev := range r.items {
		if rev.MovieID == movieID {
			out = append(out, rev)
		}
	}
	r.mu.RUnlock()

	sortReviews(out)

	return out, nil
}

func (r *ReviewsRepo) GetByID(ctx context.Context, id string) (review.Review, error) {
	if !utils.IsUUID(id) {
		return review.Review{}, review.ErrInvalidID
	}

	r.mu.RLock()
	rev, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return review.Review{}, review.ErrNotFound
	}

	return rev, nil
}

func (r *ReviewsRepo) Update(ctx context.Context, id string, req review.UpdateReviewRequest) (review.Review, error) {
	if !utils.IsUUID(id) {
		return review.Review{}, review.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rev, ok := r.items[id]

	if !ok {
		return review.Review{}, review.ErrNotFound
	}

	rev.Rating = req.Rating
	rev.Comment = req.Comment
	rev.UpdatedAt = time.Now()

	r.items[id] = rev

	return rev, nil
}

func (r *ReviewsRepo) Delete(ctx context.Context, id string) error {
	if !utils.IsUUID(id) {
		return review.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return review.ErrNotFound
	}

	delete(r.items, id)

	return nil
}

// DeleteByMovie removes every review referencing the movie and reports
// how many went.
func (r *ReviewsRepo) DeleteByMovie(movieID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0

	for id, rev := range r.items {
		if rev.MovieID == movieID {
			delete(r.items, id)
			n++
		}
	}

	return n
}

func sortReviews(out []review.Review) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
}
