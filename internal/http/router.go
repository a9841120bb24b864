package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/filmgeek/moviehub/internal/auth"
	"github.com/filmgeek/moviehub/internal/config"
	"github.com/filmgeek/moviehub/internal/http/handlers"
	"github.com/filmgeek/moviehub/internal/http/middlewares"
	"github.com/filmgeek/moviehub/internal/observability"
	"github.com/filmgeek/moviehub/internal/repo/postgres"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// metrics registry

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(prom.GinHandleMiddleware())

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool, prom)
	moviesRepo := postgres.NewMoviesRepo(pool, prom)
	reviewsRepo := postgres.NewReviewsRepo(pool, prom)

	// token manager: the signing secret is threaded in from config, never
	// read as a global
	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.JWTTTL())
	authMw := middlewares.NewAuthMiddleware(jwtManager)

	authHandler := handlers.NewAuthHandler(usersRepo, usersRepo, jwtManager)
	moviesHandler := handlers.NewMoviesHandler(moviesRepo, reviewsRepo)
	reviewsHandler := handlers.NewReviewsHandler(reviewsRepo)

	// unauthenticated paths are rate limited by IP
	limiter := middlewares.NewRateLimiter(10, time.Minute)
	limited := limiter.RateLimiterMiddleware(middlewares.KeyByIP)

	r.POST("/register", limited, authHandler.Register)
	r.POST("/login", limited, authHandler.Login)

	// everything below passes through the token gate

	protected := r.Group("/", authMw.RequireAuth())

	protected.POST("/movies", moviesHandler.CreateMovie)
	protected.GET("/movies", moviesHandler.ListMovies)
	protected.GET("/movies/:id", moviesHandler.GetMovieById)
	protected.PUT("/movies/:id", moviesHandler.UpdateMovie)
	protected.DELETE("/movies/:id", moviesHandler.DeleteMovie)
	protected.GET("/movies/:id/reviews", moviesHandler.ListMovieReviews)

	protected.POST("/reviews", reviewsHandler.CreateReview)
	protected.GET("/reviews", reviewsHandler.ListReviews)
	protected.GET("/reviews/:id", reviewsHandler.GetReviewById)
	protected.PUT("/reviews/:id", reviewsHandler.UpdateReview)
	protected.DELETE("/reviews/:id", reviewsHandler.DeleteReview)

	return r
}
