package postgres

import (
	"context"
	"errors"

	"github.com/filmgeek/moviehub/internal/domain/movie"
	"github.com/filmgeek/moviehub/internal/observability"
	"github.com/filmgeek/moviehub/internal/utils"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MoviesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewMoviesRepo(pool *pgxpool.Pool, prom *observability.Prom) *MoviesRepo {
	return &MoviesRepo{
		pool: pool,
		prom: prom,
	}
}

func (repo *MoviesRepo) observe(op string, fn func() error) error {
	if repo.prom != nil {
		return repo.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (repo *MoviesRepo) Create(ctx context.Context, req movie.CreateMovieRequest) (movie.Movie, error) {
	m := movie.NewFromCreateRequest(req)

	err := repo.observe("movies.create", func() error {
		_, e := repo.pool.Exec(ctx,
			`INSERT INTO movies (id, title, director, release_year, genre, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			m.ID, m.Title, m.Director, m.ReleaseYear, m.Genre, m.CreatedAt, m.UpdatedAt,
		)
		return e
	})

	if err != nil {
		return movie.Movie{}, err
	}

	return m, nil
}

func (repo *MoviesRepo) List(ctx context.Context) (movies []movie.Movie, err error) {
	var rows pgx.Rows

	err = repo.observe("movies.list", func() error {
		rows, err = repo.pool.Query(ctx,
			`SELECT id, title, director, release_year, genre, created_at, updated_at
			 FROM movies
			 ORDER BY created_at ASC, id ASC`,
		)
		return err
	})

	if err != nil {
		return
	}

	defer rows.Close()

	movies = make([]movie.Movie, 0)

	for rows.Next() {
		var m movie.Movie

		e := rows.Scan(&m.ID, &m.Title, &m.Director, &m.ReleaseYear, &m.Genre, &m.CreatedAt, &m.UpdatedAt)

		if e != nil {
			err = e
			return
		}
		movies = append(movies, m)
	}

	err = rows.Err()

	return
}

func (repo *MoviesRepo) GetByID(ctx context.Context, id string) (movie.Movie, error) {
	if !utils.IsUUID(id) {
		return movie.Movie{}, movie.ErrInvalidID
	}

	var m movie.Movie

	err := repo.observe("movies.get_by_id", func() error {
		return repo.pool.QueryRow(ctx,
			`SELECT id, title, director, release_year, genre, created_at, updated_at
			 FROM movies
			 WHERE id = $1`, id,
		).Scan(&m.ID, &m.Title, &m.Director, &m.ReleaseYear, &m.Genre, &m.CreatedAt, &m.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return movie.Movie{}, movie.ErrNotFound
		}

		return movie.Movie{}, err
	}

	return m, nil
}

func (repo *MoviesRepo) Update(ctx context.Context, id string, req movie.UpdateMovieRequest) (movie.Movie, error) {
	if !utils.IsUUID(id) {
		return movie.Movie{}, movie.ErrInvalidID
	}

	var m movie.Movie

	err := repo.observe("movies.update", func() error {
		return repo.pool.QueryRow(ctx,
			`UPDATE movies
				SET title = $2,
					director = $3,
					release_year = $4,
					genre = $5,
					updated_at = NOW()
			 WHERE id = $1
			 RETURNING id, title, director, release_year, genre, created_at, updated_at`,
			id,
			req.Title,
			req.Director,
			req.ReleaseYear,
			req.Genre,
		).Scan(&m.ID, &m.Title, &m.Director, &m.ReleaseYear, &m.Genre, &m.CreatedAt, &m.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return movie.Movie{}, movie.ErrNotFound
		}

		return movie.Movie{}, err
	}

	return m, nil
}

// DeleteCascade removes a movie and every review that references it.
//
// The two deletes are deliberately NOT wrapped in a transaction: the movie
// row goes first, then the review sweep, and the sweep runs even when the
// movie row was absent. Concurrent readers may briefly observe reviews for
// a movie that is already gone, and a sweep failure after the movie delete
// leaves orphaned reviews behind. Clients depend on this ordering, not-found
// included: the 404 is decided after the sweep has run.
func (repo *MoviesRepo) DeleteCascade(ctx context.Context, id string) (movie.DeleteResult, error) {
	if !utils.IsUUID(id) {
		return movie.DeleteResult{}, movie.ErrInvalidID
	}

	var res movie.DeleteResult
	var movieTag pgconn.CommandTag

	err := repo.observe("movies.delete", func() error {
		var e error
		movieTag, e = repo.pool.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
		return e
	})

	if err != nil {
		return res, err
	}

	res.MovieDeleted = movieTag.RowsAffected() > 0

	var reviewTag pgconn.CommandTag

	err = repo.observe("movies.delete_reviews", func() error {
		var e error
		reviewTag, e = repo.pool.Exec(ctx, `DELETE FROM reviews WHERE movie_id = $1`, id)
		return e
	})

	if err != nil {
		return res, err
	}

	res.ReviewsDeleted = int(reviewTag.RowsAffected())

	// movie-not-found is reported even though the review sweep already ran
	if !res.MovieDeleted {
		return res, movie.ErrNotFound
	}

	return res, nil
}
