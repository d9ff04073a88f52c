package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/auth-service/internal/api"
	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/ports"
	"github.com/99minutos/auth-service/internal/core/service"
	"github.com/99minutos/auth-service/internal/core/token"
	mongodb "github.com/99minutos/auth-service/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/auth-service/internal/infrastructure/db/redis"
	"github.com/99minutos/auth-service/internal/infrastructure/store/memory"
	"github.com/99minutos/auth-service/internal/pkg/config"
	"github.com/99minutos/auth-service/pkg/logger"
)

func main() {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// Running with an empty secret would make every token forgeable.
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)

	var (
		repo    ports.UserRepository
		mongoDB *mongo.Database
	)
	switch cfg.StoreBackend {
	case "memory":
		repo = memory.NewUserRepository()
	case "mongo":
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()

		userRepo := mongodb.NewUserRepository(db)
		if err := userRepo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongo index creation failed")
		}
		repo = userRepo
		mongoDB = db
	default:
		log.Fatal().Str("backend", cfg.StoreBackend).Msg("unknown store backend")
	}

	var (
		rdb     *goredis.Client
		limiter ports.LoginLimiter
	)
	if cfg.Redis.Enabled {
		var err error
		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() {
			_ = rdb.Close()
		}()
		limiter = redisdb.NewLoginLimiter(rdb)
	}

	authService := service.NewAuthService(repo, tokens, limiter)

	if cfg.Seed.Username != "" {
		seedUser(ctx, authService, cfg)
	}

	e := api.NewRouter(api.Deps{
		Logger:         log,
		AuthService:    authService,
		Tokens:         tokens,
		ProtectedRoles: cfg.ProtectedRoles,
		Mongo:          mongoDB,
		Redis:          rdb,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("store", cfg.StoreBackend).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	log.Info().Msg("shutdown complete")
}

// seedUser registers the startup account from the environment. An existing
// user with the same name is fine; the service may simply have restarted.
func seedUser(ctx context.Context, auth ports.AuthService, cfg *config.Config) {
	log := logger.Get()

	_, err := auth.Register(ctx, cfg.Seed.Username, cfg.Seed.Password, cfg.Seed.Role)
	switch {
	case err == nil:
		log.Info().Str("username", cfg.Seed.Username).Str("role", cfg.Seed.Role).Msg("seed user registered")
	case errors.Is(err, domain.ErrUserExists):
		log.Debug().Str("username", cfg.Seed.Username).Msg("seed user already present")
	default:
		log.Fatal().Err(err).Msg("seed user registration failed")
	}
}
