package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/limmers2015/Car-Part-Connection/internal/config"
	"github.com/limmers2015/Car-Part-Connection/internal/crypto"
	"github.com/limmers2015/Car-Part-Connection/internal/database"
	"github.com/limmers2015/Car-Part-Connection/internal/httpd"
	"github.com/limmers2015/Car-Part-Connection/internal/logging"
	"github.com/limmers2015/Car-Part-Connection/internal/metrics"
	"github.com/limmers2015/Car-Part-Connection/internal/redis"
	"github.com/limmers2015/Car-Part-Connection/internal/server"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func setupRedis(cfg *config.Config) *goredis.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *httpd.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")
		srv.Stop()
		close(done)
	}()

	return done
}

func main() {
	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	redisClient := setupRedis(cfg)
	defer func() { _ = redisClient.Close() }()

	users := database.NewUserRepo(pool)
	vehicles := database.NewVehicleRepo(pool)
	sessions := redis.NewSessionStore(redisClient)
	hasher := crypto.NewArgon2idHasher()

	app := server.New(cfg, users, vehicles, sessions, hasher)

	srv, err := httpd.NewServer(cfg.Port, app.Router(), httpd.Options{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		MaxBodyBytes: cfg.MaxBodyBytes,
	}, clockwork.NewRealClock())
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}
	srv.OnRequest(metrics.ObserveRequest)

	done := runGracefulShutdown(srv)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Serve(); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
