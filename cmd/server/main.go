package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/vplaza/catalogue-service-go/internal/config"
	"github.com/vplaza/catalogue-service-go/internal/db"
	"github.com/vplaza/catalogue-service-go/internal/db/repository"
	"github.com/vplaza/catalogue-service-go/internal/handler"
	"github.com/vplaza/catalogue-service-go/internal/importer"
	"github.com/vplaza/catalogue-service-go/internal/middleware"
	"github.com/vplaza/catalogue-service-go/internal/service"
	"github.com/vplaza/catalogue-service-go/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	pool, err := db.NewPool(ctx, &db.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxConnections),
		MinConns:        int32(cfg.Database.MinConnections),
		MaxConnLifetime: cfg.Database.MaxLifetime,
		MaxConnIdleTime: cfg.Database.MaxIdleTime,
	})
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close(pool)

	logger.Log.Info("database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Name),
	)

	var publisher service.EventPublisher = service.NoopPublisher{}
	if cfg.RabbitMQ.Enabled {
		mp, err := service.NewMessagePublisher(&cfg.RabbitMQ)
		if err != nil {
			logger.Log.Fatal("failed to connect to RabbitMQ", zap.Error(err))
		}
		publisher = mp
		defer func() { _ = mp.Close() }()
	} else {
		logger.Log.Info("event publishing disabled")
	}

	videoRepo := repository.NewVideoRepository(pool)

	if len(cfg.Auth.Tokens) == 0 {
		logger.Log.Warn("no API tokens configured, write endpoints will reject all requests")
	}

	router := &handler.Router{
		Videos:  handler.NewVideoHandler(videoRepo, publisher),
		Imports: handler.NewImportHandler(importer.New(videoRepo), publisher, cfg.Import.MaxPayloadSize),
		Health:  handler.NewHealthHandler(pool, publisher),
		Auth:    middleware.NewTokenAuth(cfg.Auth.Tokens),
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router.Build(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Log.Info("server starting", zap.Int("port", cfg.Server.Port))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Log.Fatal("server error", zap.Error(err))
	case sig := <-shutdown:
		logger.Log.Info("shutdown signal received", zap.String("signal", sig.String()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("graceful shutdown failed", zap.Error(err))
			_ = server.Close()
			os.Exit(1)
		}

		logger.Log.Info("server stopped gracefully")
	}
}
