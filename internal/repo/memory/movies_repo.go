package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/filmgeek/moviehub/internal/domain/movie"
	"github.com/filmgeek/moviehub/internal/utils"
)

// MoviesRepo is an in-memory stand-in for the postgres repo, used by
// handler pipeline tests. It mirrors the same method set, including the
// non-transactional cascade delete.
type MoviesRepo struct {
	mu      sync.RWMutex
	items   map[string]movie.Movie
	reviews *ReviewsRepo
}

func NewMoviesRepo(reviews *ReviewsRepo) *MoviesRepo {
	return &MoviesRepo{
		items:   make(map[string]movie.Movie),
		reviews: reviews,
	}
}

func (r *MoviesRepo) Create(ctx context.Context, req movie.CreateMovieRequest) (movie.Movie, error) {
	m := movie.NewFromCreateRequest(req)

	r.mu.Lock()
	r.items[m.ID] = m
	r.mu.Unlock()

	return m, nil
}

func (r *MoviesRepo) List(ctx context.Context) ([]movie.Movie, error) {
	r.mu.RLock()
	out := make([]movie.Movie, 0, len(r.items))

	for _, m := range r.items {
		out = append(out, m)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *MoviesRepo) GetByID(ctx context.Context, id string) (movie.Movie, error) {
	if !utils.IsUUID(id) {
		return movie.Movie{}, movie.ErrInvalidID
	}

	r.mu.RLock()
	m, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return movie.Movie{}, movie.ErrNotFound
	}

	return m, nil
}

func (r *MoviesRepo) Update(ctx context.Context, id string, req movie.UpdateMovieRequest) (movie.Movie, error) {
	if !utils.IsUUID(id) {
		return movie.Movie{}, movie.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[id]

	if !ok {
		return movie.Movie{}, movie.ErrNotFound
	}

	m.Title = req.Title
	m.Director = req.Director
	m.ReleaseYear = req.ReleaseYear
	m.Genre = req.Genre
	m.UpdatedAt = time.Now()

	r.items[id] = m

	return m, nil
}

// DeleteCascade keeps the same two-step order as the postgres repo: the
// movie goes first, then the review sweep, and the sweep runs even when
// the movie was absent.
func (r *MoviesRepo) DeleteCascade(ctx context.Context, id string) (movie.DeleteResult, error) {
	if !utils.IsUUID(id) {
		return movie.DeleteResult{}, movie.ErrInvalidID
	}

	var res movie.DeleteResult

	r.mu.Lock()
	_, ok := r.items[id]

	if ok {
		delete(r.items, id)
		res.MovieDeleted = true
	}
	r.mu.Unlock()

	res.ReviewsDeleted = r.reviews.DeleteByMovie(id)

	if !res.MovieDeleted {
		return res, movie.ErrNotFound
	}

	return res, nil
}
