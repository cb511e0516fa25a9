package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"fncs-api/internal/config"
	"fncs-api/internal/db"
	apihttp "fncs-api/internal/http"
	"fncs-api/internal/repository"
	"fncs-api/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := db.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		logger.Fatal("db migrations", zap.Error(err))
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	cacheTTL := time.Duration(cfg.CategoryCacheTTLSeconds) * time.Second
	categoryCache := service.NewMemoryCategoryCache(cacheTTL)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory cache", zap.Error(err))
		} else {
			categoryCache = service.NewRedisCategoryCache(redisClient, cacheTTL)
		}
		cancel()
	}

	tokenSvc, err := service.NewTokenService(
		cfg.JWTSecret,
		cfg.JWTAlgorithm,
		time.Duration(cfg.JWTTTLSeconds)*time.Second,
		time.Duration(cfg.JWTSkewSeconds)*time.Second,
	)
	if err != nil {
		logger.Fatal("token service init", zap.Error(err))
	}

	queryTimeout := time.Duration(cfg.DBQueryTimeoutSeconds) * time.Second
	userRepo := repository.NewPgUserRepository(pool)
	categoryRepo := repository.NewPgCategoryRepository(pool)
	authSvc := service.NewAuthService(logger, userRepo, tokenSvc, queryTimeout)

	authHandler := apihttp.NewAuthHandler(logger, authSvc)
	categoryHandler := apihttp.NewCategoryHandler(logger, categoryRepo, categoryCache)
	healthHandler := apihttp.NewHealthHandler(logger, pool)
	router := apihttp.NewRouter(logger, tokenSvc, authHandler, categoryHandler, healthHandler, cfg.CORSOrigins)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
