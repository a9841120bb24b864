package postgres

import (
	"context"
	"errors"

	"github.com/filmgeek/moviehub/internal/domain/review"
	"github.com/filmgeek/moviehub/internal/observability"
	"github.com/filmgeek/moviehub/internal/utils"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewReviewsRepo(pool *pgxpool.Pool, prom *observability.Prom) *ReviewsRepo {
	return &ReviewsRepo{
		pool: pool,
		prom: prom,
	}
}

func (repo *ReviewsRepo) observe(op string, fn func() error) error {
	if repo.prom != nil {
		return repo.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (repo *ReviewsRepo) Create(ctx context.Context, req review.CreateReviewRequest) (review.Review, error) {
	r := review.NewFromCreateRequest(req)

	err := repo.observe("reviews.create", func() error {
		_, e := repo.pool.Exec(ctx,
			`INSERT INTO reviews (id, movie_id, user_id, rating, comment, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			r.ID, r.MovieID, r.UserID, r.Rating, r.Comment, r.CreatedAt, r.UpdatedAt,
		)
		return e
	})

	if err != nil {
		return review.Review{}, err
	}

	return r, nil
}

func (repo *ReviewsRepo) List(ctx context.Context) (reviews []review.Review, err error) {
	var rows pgx.Rows

	err = repo.observe("reviews.list", func() error {
		rows, err = repo.pool.Query(ctx,
			`SELECT id, movie_id, user_id, rating, comment, created_at, updated_at
			 FROM reviews
			 ORDER BY created_at ASC, id ASC`,
		)
		return err
	})

	if err != nil {
		return
	}

	defer rows.Close()

	reviews = make([]review.Review, 0)

	for rows.Next() {
		var r review.Review

		e := rows.Scan(&r.ID, &r.MovieID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt)

		if e != nil {
			err = e
			return
		}
		reviews = append(reviews, r)
	}

	err = rows.Err()

	return
}

// ListByMovie returns every review referencing the given movie.
func (repo *ReviewsRepo) ListByMovie(ctx context.Context, movieID string) (reviews []review.Review, err error) {
	if !utils.IsUUID(movieID) {
		return nil, review.ErrInvalidID
	}

	var rows pgx.Rows

	err = repo.observe("reviews.list_by_movie", func() error {
		rows, err = repo.pool.Query(ctx,
			`SELECT id, movie_id, user_id, rating, comment, created_at, updated_at
			 FROM reviews
			 WHERE movie_id = $1
			 ORDER BY created_at ASC, id ASC`,
			movieID,
		)
		return err
	})

	if err != nil {
		return
	}

	defer rows.Close()

	reviews = make([]review.Review, 0)

	for rows.Next() {
		var r review.Review

		e := rows.Scan(&r.ID, &r.MovieID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt)

		if e != nil {
			err = e
			return
		}
		reviews = append(reviews, r)
	}

	err = rows.Err()

	return
}

func (repo *ReviewsRepo) GetByID(ctx context.Context, id string) (review.Review, error) {
	if !utils.IsUUID(id) {
		return review.Review{}, review.ErrInvalidID
	}

	var r review.Review

	err := repo.observe("reviews.get_by_id", func() error {
		return repo.pool.QueryRow(ctx,
			`SELECT id, movie_id, user_id, rating, comment, created_at, updated_at
			 FROM reviews
			 WHERE id = $1`, id,
		).Scan(&r.ID, &r.MovieID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return review.Review{}, review.ErrNotFound
		}

		return review.Review{}, err
	}

	return r, nil
}

func (repo *ReviewsRepo) Update(ctx context.Context, id string, req review.UpdateReviewRequest) (review.Review, error) {
	if !utils.IsUUID(id) {
		return review.Review{}, review.ErrInvalidID
	}

	var r review.Review

	err := repo.observe("reviews.update", func() error {
		return repo.pool.QueryRow(ctx,
			`UPDATE reviews
				SET rating = $2,
					comment = $3,
					updated_at = NOW()
			 WHERE id = $1
			 RETURNING id, movie_id, user_id, rating, comment, created_at, updated_at`,
			id,
			req.Rating,
			req.Comment,
		).Scan(&r.ID, &r.MovieID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return review.Review{}, review.ErrNotFound
		}

		return review.Review{}, err
	}

	return r, nil
}

func (repo *ReviewsRepo) Delete(ctx context.Context, id string) (err error) {
	if !utils.IsUUID(id) {
		return review.ErrInvalidID
	}

	var tag pgconn.CommandTag

	err = repo.observe("reviews.delete", func() error {
		var e error
		tag, e = repo.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)

		return e
	})

	if err != nil {
		return
	}

	if tag.RowsAffected() == 0 {
		err = review.ErrNotFound

		return
	}

	return
}
