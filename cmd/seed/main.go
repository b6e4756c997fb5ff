package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"book_reviews/internal/adapters/observability"
	redisad "book_reviews/internal/adapters/redis"
	"book_reviews/internal/app"
	"book_reviews/internal/domain"
	"book_reviews/internal/shared"
	mysqlrepo "book_reviews/internal/storage/mysql"
)

// fixture is the shape of the seed file: accounts first, then books with
// their reviews keyed by username.
type fixture struct {
	Users []struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"users"`
	Books []struct {
		Title         string `json:"title"`
		Author        string `json:"author"`
		Genre         string `json:"genre"`
		Description   string `json:"description"`
		PublishedYear *int   `json:"publishedYear"`
		Reviews       []struct {
			User    string `json:"user"`
			Rating  int    `json:"rating"`
			Comment string `json:"comment"`
		} `json:"reviews"`
	} `json:"books"`
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, "seed")

	raw, err := os.ReadFile(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.SeedFile).Msg("read seed file failed")
	}
	var fx fixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		log.Fatal().Err(err).Msg("parse seed file failed")
	}
	log.Info().
		Int("users", len(fx.Users)).
		Int("books", len(fx.Books)).
		Int("workers", cfg.SeedWorkers).
		Msg("seed starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	books := mysqlrepo.NewBookRepo(db)
	reviews := mysqlrepo.NewReviewRepo(db)
	users := mysqlrepo.NewUserRepo(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	auth := app.NewAuthService(users, noTokens{})
	bookSvc := app.NewBookService(books, reviews, cache, cfg.CacheTTL())
	reviewSvc := app.NewReviewService(books, reviews, app.NewRecomputer(books, reviews), cache)

	// accounts first, serially; books below reference them by username
	userIDs := map[string]int64{}
	for _, u := range fx.Users {
		created, err := auth.Register(ctx, u.Username, u.Email, u.Password)
		if err != nil {
			log.Warn().Str("user", u.Username).Err(err).Msg("register failed")
			continue
		}
		userIDs[created.Username] = created.ID
	}

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, b := range fx.Books {
		b := b

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			created, err := bookSvc.Create(ctx, domain.Book{
				Title:         b.Title,
				Author:        b.Author,
				Genre:         b.Genre,
				Description:   b.Description,
				PublishedYear: b.PublishedYear,
			})
			if err != nil {
				log.Warn().Str("title", b.Title).Err(err).Msg("create book failed")
				return
			}
			for _, r := range b.Reviews {
				uid, ok := userIDs[r.User]
				if !ok {
					log.Warn().Str("title", b.Title).Str("user", r.User).Msg("unknown reviewer")
					continue
				}
				if _, err := reviewSvc.Create(ctx, uid, created.ID, r.Rating, r.Comment); err != nil {
					log.Warn().Str("title", b.Title).Str("user", r.User).Err(err).Msg("create review failed")
				}
			}
			log.Info().Int64("id", created.ID).Str("title", b.Title).Int("reviews", len(b.Reviews)).Msg("seeded")
		}()
	}

	wg.Wait()
	log.Info().Msg("seed completed")
}

// noTokens satisfies the auth service; seeding never logs anyone in.
type noTokens struct{}

func (noTokens) Issue(int64, string) (string, error) { return "", nil }
