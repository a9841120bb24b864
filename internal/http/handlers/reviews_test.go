package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/filmgeek/moviehub/internal/domain/review"
	"github.com/filmgeek/moviehub/internal/http/handlers"
)

// Fake repository implementation of the handlers.ReviewsStore interface

type fakeReviewsRepo struct {
	createFn    func(ctx context.Context, req review.CreateReviewRequest) (review.Review, error)
	listFn      func(ctx context.Context) ([]review.Review, error)
	getFn       func(ctx context.Context, id string) (review.Review, error)
	updateFn    func(ctx context.Context, id string, req review.UpdateReviewRequest) (review.Review, error)
	deleteFn    func(ctx context.Context, id string) error
	createCalls int
}

func (f *fakeReviewsRepo) Create(ctx context.Context, req review.CreateReviewRequest) (review.Review, error) {
	f.createCalls++
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}

	return review.Review{}, nil
}

func (f *fakeReviewsRepo) List(ctx context.Context) ([]review.Review, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}

	return nil, nil
}

func (f *fakeReviewsRepo) GetByID(ctx context.Context, id string) (review.Review, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}

	return review.Review{}, nil
}

func (f *fakeReviewsRepo) Update(ctx context.Context, id string, req review.UpdateReviewRequest) (review.Review, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, req)
	}

	return review.Review{}, nil
}

func (f *fakeReviewsRepo) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}

	return nil
}

func TestCreateReviewHandler(t *testing.T) {
	movieID := newUUID()
	userID := newUUID()

	fullBody := fmt.Sprintf(`{"movieId":%q,"userId":%q,"rating":4,"comment":"solid"}`, movieID, userID)

	tests := []struct {
		name           string
		body           string
		repoSetUp      func(*fakeReviewsRepo)
		wantStatusCode int
		wantNoCreate   bool
	}{
		{
			name: "success",
			body: fullBody,
			repoSetUp: func(f *fakeReviewsRepo) {
				f.createFn = func(ctx context.Context, req review.CreateReviewRequest) (review.Review, error) {
					return review.NewFromCreateRequest(req), nil
				}
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "missing_movie_id",
			body:           fmt.Sprintf(`{"userId":%q,"rating":4,"comment":"solid"}`, userID),
			wantStatusCode: http.StatusBadRequest,
			wantNoCreate:   true,
		},
		{
			name:           "missing_user_id",
			body:           fmt.Sprintf(`{"movieId":%q,"rating":4,"comment":"solid"}`, movieID),
			wantStatusCode: http.StatusBadRequest,
			wantNoCreate:   true,
		},
		{
			name:           "missing_rating",
			body:           fmt.Sprintf(`{"movieId":%q,"userId":%q,"comment":"solid"}`, movieID, userID),
			wantStatusCode: http.StatusBadRequest,
			wantNoCreate:   true,
		},
		{
			name:           "missing_comment",
			body:           fmt.Sprintf(`{"movieId":%q,"userId":%q,"rating":4}`, movieID, userID),
			wantStatusCode: http.StatusBadRequest,
			wantNoCreate:   true,
		},
		{
			name: "repo_error",
			body: fullBody,
			repoSetUp: func(f *fakeReviewsRepo) {
				f.createFn = func(ctx context.Context, req review.CreateReviewRequest) (review.Review, error) {
					return review.Review{}, errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fakeRepo := &fakeReviewsRepo{}

			if tt.repoSetUp != nil {
				tt.repoSetUp(fakeRepo)
			}

			h := handlers.NewReviewsHandler(fakeRepo)
			r := setupRouter(http.MethodPost, "/reviews", h.CreateReview)

			req := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantNoCreate && fakeRepo.createCalls != 0 {
				t.Fatalf("expected no review created, got %d create calls", fakeRepo.createCalls)
			}
		})
	}
}

func TestGetReviewByIdHandler(t *testing.T) {
	validID := newUUID()

	tests := []struct {
		name           string
		url            string
		repoSetUp      func(*fakeReviewsRepo)
		wantStatusCode int
	}{
		{
			name: "success",
			url:  "/reviews/" + validID,
			repoSetUp: func(f *fakeReviewsRepo) {
				f.getFn = func(ctx context.Context, id string) (review.Review, error) {
					return review.Review{ID: id, MovieID: newUUID(), UserID: newUUID(), Rating: 5, Comment: "great"}, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "not_found",
			url:  "/reviews/" + newUUID(),
			repoSetUp: func(f *fakeReviewsRepo) {
				f.getFn = func(ctx context.Context, id string) (review.Review, error) {
					return review.Review{}, review.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "invalid_id",
			url:  "/reviews/not-a-uuid",
			repoSetUp: func(f *fakeReviewsRepo) {
				f.getFn = func(ctx context.Context, id string) (review.Review, error) {
					return review.Review{}, review.ErrInvalidID
				}
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "repo_error",
			url:  "/reviews/" + validID,
			repoSetUp: func(f *fakeReviewsRepo) {
				f.getFn = func(ctx context.Context, id string) (review.Review, error) {
					return review.Review{}, errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fakeRepo := &fakeReviewsRepo{}

			if tt.repoSetUp != nil {
				tt.repoSetUp(fakeRepo)
			}

			h := handlers.NewReviewsHandler(fakeRepo)
			r := setupRouter(http.MethodGet, "/reviews/:id", h.GetReviewById)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestUpdateReviewHandler(t *testing.T) {
	validID := newUUID()

	fullBody := `{"rating":2,"comment":"changed my mind"}`

	tests := []struct {
		name           string
		url            string
		body           string
		repoSetUp      func(*fakeReviewsRepo)
		wantStatusCode int
	}{
		{
			name: "success",
			url:  "/reviews/" + validID,
			body: fullBody,
			repoSetUp: func(f *fakeReviewsRepo) {
				f.updateFn = func(ctx context.Context, id string, req review.UpdateReviewRequest) (review.Review, error) {
					return review.Review{ID: id, Rating: req.Rating, Comment: req.Comment}, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "validation_error",
			url:            "/reviews/" + validID,
			body:           `{"rating":2}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "not_found",
			url:  "/reviews/" + newUUID(),
			body: fullBody,
			repoSetUp: func(f *fakeReviewsRepo) {
				f.updateFn = func(ctx context.Context, id string, req review.UpdateReviewRequest) (review.Review, error) {
					return review.Review{}, review.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "repo_error",
			url:  "/reviews/" + validID,
			body: fullBody,
			repoSetUp: func(f *fakeReviewsRepo) {
				f.updateFn = func(ctx context.Context, id string, req review.UpdateReviewRequest) (review.Review, error) {
					return review.Review{}, errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fakeRepo := &fakeReviewsRepo{}

			if tt.repoSetUp != nil {
				tt.repoSetUp(fakeRepo)
			}

			h := handlers.NewReviewsHandler(fakeRepo)
			r := setupRouter(http.MethodPut, "/reviews/:id", h.UpdateReview)

			req := httptest.NewRequest(http.MethodPut, tt.url, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestDeleteReviewHandler(t *testing.T) {
	validID := newUUID()

	tests := []struct {
		name           string
		url            string
		repoSetUp      func(*fakeReviewsRepo)
		wantStatusCode int
		wantMessage    string
	}{
		{
			name:           "success",
			url:            "/reviews/" + validID,
			wantStatusCode: http.StatusOK,
			wantMessage:    "Review deleted successfully",
		},
		{
			name: "not_found",
			url:  "/reviews/" + newUUID(),
			repoSetUp: func(f *fakeReviewsRepo) {
				f.deleteFn = func(ctx context.Context, id string) error {
					return review.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "invalid_id",
			url:  "/reviews/not-a-uuid",
			repoSetUp: func(f *fakeReviewsRepo) {
				f.deleteFn = func(ctx context.Context, id string) error {
					return review.ErrInvalidID
				}
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "repo_error",
			url:  "/reviews/" + validID,
			repoSetUp: func(f *fakeReviewsRepo) {
				f.deleteFn = func(ctx context.Context, id string) error {
					return errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fakeRepo := &fakeReviewsRepo{}

			if tt.repoSetUp != nil {
				tt.repoSetUp(fakeRepo)
			}

			h := handlers.NewReviewsHandler(fakeRepo)
			r := setupRouter(http.MethodDelete, "/reviews/:id", h.DeleteReview)

			req := httptest.NewRequest(http.MethodDelete, tt.url, nil)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantMessage != "" {
				var resp struct {
					Message string `json:"message"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}

				if resp.Message != tt.wantMessage {
					t.Fatalf("message = %q, want %q", resp.Message, tt.wantMessage)
				}
			}
		})
	}
}
