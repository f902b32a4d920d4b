package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/14vosx/hsc-auth-api/internal/config"
	"github.com/14vosx/hsc-auth-api/internal/database"
	"github.com/14vosx/hsc-auth-api/internal/handler"
	"github.com/14vosx/hsc-auth-api/internal/middleware"
	"github.com/14vosx/hsc-auth-api/internal/queue"
	"github.com/14vosx/hsc-auth-api/internal/repository"
	"github.com/14vosx/hsc-auth-api/internal/router"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.EnsureSchema(ctx, db)
	cancel()
	if err != nil {
		log.Fatalf("schema: %v", err)
	}

	// Optional infrastructure. A nil Redis client turns the rate limiter
	// and the response cache into pass-throughs; the queue publisher drops
	// events when the broker is unreachable.
	rdb := config.NewRedisClient()
	events := queue.NewPublisher()
	go queue.StartAuditConsumer()

	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	seasons := repository.NewSeasonRepo(db)
	articles := repository.NewArticleRepo(db)

	authH := handler.NewAuthHandler(cfg, users, sessions, events)
	seasonH := handler.NewSeasonHandler(seasons, events)
	articleH := handler.NewArticleHandler(articles)
	publicH := handler.NewPublicHandler(seasons, articles)
	healthH := handler.NewHealthHandler(db)

	authn := middleware.Authenticate(cfg.JWTSecret, cfg.AdminKey)
	loginLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.RegisterRoutes(e, healthH)
	router.RegisterAuth(e, authH, authn, loginLimit)
	router.RegisterAdmin(e, seasonH, articleH, authn)
	router.RegisterPublic(e, publicH, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
