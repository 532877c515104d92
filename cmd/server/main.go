package main // Entry point package

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-auth-service/internal/config"
	"github.com/iliyamo/user-auth-service/internal/database"
	"github.com/iliyamo/user-auth-service/internal/handler"
	"github.com/iliyamo/user-auth-service/internal/logger"
	"github.com/iliyamo/user-auth-service/internal/middleware"
	"github.com/iliyamo/user-auth-service/internal/queue"
	"github.com/iliyamo/user-auth-service/internal/repository"
	"github.com/iliyamo/user-auth-service/internal/router"
	"github.com/iliyamo/user-auth-service/internal/service"
)

func main() {
	// .env is a development convenience; in prod the variables come from
	// the environment and the file is simply absent.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.Env)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("migrations failed")
	}
	cancel()

	// Nil when redis is unreachable; the rate limiter degrades to a
	// pass-through in that case.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, rate limiting disabled")
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	tokenSvc := service.NewTokenService(cfg, tokenRepo, userRepo)
	authSvc := service.NewAuthService(userRepo, tokenRepo, tokenSvc)
	userSvc := service.NewUserService(userRepo)
	publisher := queue.NewPublisher(cfg.AMQPURL, log)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLogger(log))

	authHandler := handler.NewAuthHandler(authSvc, userSvc, tokenSvc, publisher)
	userHandler := handler.NewUserHandler(userSvc)
	router.Register(e, authHandler, userHandler, userSvc, cfg, config.LoadRateLimitConfig(), rdb)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
