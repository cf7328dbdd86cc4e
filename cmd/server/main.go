package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedback-board/app/controllers"
	"feedback-board/app/repo"
	"feedback-board/app/services"
	"feedback-board/app/session"
	"feedback-board/app/view"
	"feedback-board/config"
	"feedback-board/db"
	"feedback-board/logger"
	"feedback-board/router"
	"feedback-board/server"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// .env is a development convenience; real deployments set env vars
	// directly.
	_ = godotenv.Load()

	cfgPath := flag.String("config", "", "path to config yaml")
	flag.Parse()

	if err := logger.Init(""); err != nil {
		os.Exit(1)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.L.Fatal().Err(err).Msg("load config")
	}
	if cfg.Log.Path != "" {
		if err := logger.Init(cfg.Log.Path); err != nil {
			logger.L.Fatal().Err(err).Msg("open log file")
		}
	}

	gdb, err := db.Connect(cfg.DB)
	if err != nil {
		logger.L.Fatal().Err(err).Msg("connect db")
	}
	if err := db.Migrate(gdb); err != nil {
		logger.L.Fatal().Err(err).Msg("migrate db")
	}

	if cfg.Session.Secret == "" {
		logger.L.Fatal().Msg("session.secret is required")
	}

	var store session.Store
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		store = session.NewRedisStore(client)
		logger.L.Info().Str("addr", cfg.Redis.Addr).Msg("redis session store")
	} else {
		store = session.NewMemoryStore()
	}
	sessions := session.NewManager(store, session.Config{
		CookieName: cfg.Session.CookieName,
		Secret:     cfg.Session.Secret,
		TTL:        time.Duration(cfg.Session.TTLMin) * time.Minute,
		Secure:     cfg.Session.Secure,
		Logger:     logger.L,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	views, err := view.New(cfg.Templates.Dir, logger.L)
	if err != nil {
		logger.L.Fatal().Err(err).Msg("parse templates")
	}
	if err := views.Watch(ctx); err != nil {
		logger.L.Fatal().Err(err).Msg("watch templates")
	}

	userRepo := repo.NewUserRepository(gdb)
	feedbackRepo := repo.NewFeedbackRepository(gdb)
	authSvc := services.NewAuthService(userRepo)
	feedbackSvc := services.NewFeedbackService(feedbackRepo, userRepo)

	authCtrl := controllers.NewAuthController(authSvc, sessions, views, logger.L)
	userCtrl := controllers.NewUserController(userRepo, feedbackSvc, sessions, views, logger.L)
	fbCtrl := controllers.NewFeedbackController(feedbackSvc, sessions, views, logger.L)

	handler := router.New(authCtrl, userCtrl, fbCtrl, sessions, logger.L)

	logger.L.Info().Str("addr", cfg.HTTP.Addr()).Msg("listening")
	if err := server.Run(ctx, cfg.HTTP.Addr(), handler); err != nil {
		logger.L.Fatal().Err(err).Msg("server exited")
	}
}
