package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/filmgeek/moviehub/internal/domain/movie"
	"github.com/filmgeek/moviehub/internal/domain/review"
	"github.com/filmgeek/moviehub/internal/repo/memory"
	"github.com/google/uuid"
)

func seedMovieWithReviews(t *testing.T, movies *memory.MoviesRepo, reviews *memory.ReviewsRepo, n int) (movie.Movie, []review.Review) {
	t.Helper()

	ctx := context.Background()

	m, err := movies.Create(ctx, movie.CreateMovieRequest{
		Title:       "Blade Runner",
		Director:    "Ridley Scott",
		ReleaseYear: 1982,
		Genre:       "Sci-Fi",
	})
	if err != nil {
		t.Fatalf("Create movie: %v", err)
	}

	out := make([]review.Review, 0, n)

	for i := 0; i < n; i++ {
		rev, err := reviews.Create(ctx, review.CreateReviewRequest{
			MovieID: m.ID,
			UserID:  uuid.NewString(),
			Rating:  5,
			Comment: "a classic",
		})
		if err != nil {
			t.Fatalf("Create review: %v", err)
		}
		out = append(out, rev)
	}

	return m, out
}

func TestDeleteCascadeRemovesMovieAndReviews(t *testing.T) {
	ctx := context.Background()

	reviewsRepo := memory.NewReviewsRepo()
	moviesRepo := memory.NewMoviesRepo(reviewsRepo)

	m, revs := seedMovieWithReviews(t, moviesRepo, reviewsRepo, 3)

	// an unrelated movie's reviews must survive the sweep
	other, otherRevs := seedMovieWithReviews(t, moviesRepo, reviewsRepo, 1)

	res, err := moviesRepo.DeleteCascade(ctx, m.ID)
	if err != nil {
		t.Fatalf("DeleteCascade() unexpected error: %v", err)
	}

	if !res.MovieDeleted {
		t.Fatal("expected the movie to be reported deleted")
	}
	if res.ReviewsDeleted != 3 {
		t.Fatalf("ReviewsDeleted = %d, want 3", res.ReviewsDeleted)
	}

	if _, err := moviesRepo.GetByID(ctx, m.ID); !errors.Is(err, movie.ErrNotFound) {
		t.Fatalf("movie lookup after cascade = %v, want ErrNotFound", err)
	}

	for _, rev := range revs {
		if _, err := reviewsRepo.GetByID(ctx, rev.ID); !errors.Is(err, review.ErrNotFound) {
			t.Fatalf("review %s survived the cascade: %v", rev.ID, err)
		}
	}

	if _, err := moviesRepo.GetByID(ctx, other.ID); err != nil {
		t.Fatalf("unrelated movie was deleted: %v", err)
	}
	if _, err := reviewsRepo.GetByID(ctx, otherRevs[0].ID); err != nil {
		t.Fatalf("unrelated review was deleted: %v", err)
	}
}

// The review sweep runs even when the movie is absent. A delete of a
// well-formed but unknown id still reports not found afterwards.
func TestDeleteCascadeMissingMovieStillSweepsReviews(t *testing.T) {
	ctx := context.Background()

	reviewsRepo := memory.NewReviewsRepo()
	moviesRepo := memory.NewMoviesRepo(reviewsRepo)

	orphanMovieID := uuid.NewString()

	// reviews referencing a movie that does not exist
	for i := 0; i < 2; i++ {
		if _, err := reviewsRepo.Create(ctx, review.CreateReviewRequest{
			MovieID: orphanMovieID,
			UserID:  uuid.NewString(),
			Rating:  3,
			Comment: "orphaned",
		}); err != nil {
			t.Fatalf("Create review: %v", err)
		}
	}

	res, err := moviesRepo.DeleteCascade(ctx, orphanMovieID)

	if !errors.Is(err, movie.ErrNotFound) {
		t.Fatalf("DeleteCascade() error = %v, want ErrNotFound", err)
	}

	if res.MovieDeleted {
		t.Fatal("no movie existed, MovieDeleted should be false")
	}
	if res.ReviewsDeleted != 2 {
		t.Fatalf("ReviewsDeleted = %d, want 2 (sweep must run regardless)", res.ReviewsDeleted)
	}

	remaining, err := reviewsRepo.ListByMovie(ctx, orphanMovieID)
	if err != nil {
		t.Fatalf("ListByMovie: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("orphaned reviews survived: %d left", len(remaining))
	}
}

func TestDeleteCascadeInvalidID(t *testing.T) {
	reviewsRepo := memory.NewReviewsRepo()
	moviesRepo := memory.NewMoviesRepo(reviewsRepo)

	_, err := moviesRepo.DeleteCascade(context.Background(), "not-a-uuid")

	if !errors.Is(err, movie.ErrInvalidID) {
		t.Fatalf("DeleteCascade() error = %v, want ErrInvalidID", err)
	}
}

func TestMoviesRepoUpdate(t *testing.T) {
	ctx := context.Background()

	reviewsRepo := memory.NewReviewsRepo()
	moviesRepo := memory.NewMoviesRepo(reviewsRepo)

	m, _ := seedMovieWithReviews(t, moviesRepo, reviewsRepo, 0)

	updated, err := moviesRepo.Update(ctx, m.ID, movie.UpdateMovieRequest{
		Title:       "Blade Runner (Final Cut)",
		Director:    "Ridley Scott",
		ReleaseYear: 2007,
		Genre:       "Sci-Fi",
	})
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}

	if updated.Title != "Blade Runner (Final Cut)" || updated.ReleaseYear != 2007 {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.ID != m.ID {
		t.Fatalf("update changed the id: %s -> %s", m.ID, updated.ID)
	}

	if _, err := moviesRepo.Update(ctx, uuid.NewString(), movie.UpdateMovieRequest{
		Title: "x", Director: "y", ReleaseYear: 2000, Genre: "z",
	}); !errors.Is(err, movie.ErrNotFound) {
		t.Fatalf("Update() on unknown id = %v, want ErrNotFound", err)
	}
}
