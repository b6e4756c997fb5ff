package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "book_reviews/internal/adapters/http_server"
	"book_reviews/internal/adapters/observability"
	redisad "book_reviews/internal/adapters/redis"
	"book_reviews/internal/adapters/token"
	"book_reviews/internal/app"
	"book_reviews/internal/shared"
	mysqlrepo "book_reviews/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "api")

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	books := mysqlrepo.NewBookRepo(db)
	reviews := mysqlrepo.NewReviewRepo(db)
	users := mysqlrepo.NewUserRepo(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTTTL)

	rec := app.NewRecomputer(books, reviews)
	handlers := &server.Handlers{
		Auth:    app.NewAuthService(users, tokens),
		Books:   app.NewBookService(books, reviews, cache, cfg.CacheTTL()),
		Reviews: app.NewReviewService(books, reviews, rec, cache),
		Tokens:  tokens,
	}

	// http
	srv := server.New(cfg.RateRPS, cfg.RateBurst)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(handlers)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
