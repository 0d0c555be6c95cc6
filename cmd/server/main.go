package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"clientportal/internal/config"
	"clientportal/internal/dashboard"
	"clientportal/internal/handler"
	"clientportal/internal/httpserver"
	"clientportal/internal/repository"
	"clientportal/internal/service/auth"
	"clientportal/pkg/db"
	"clientportal/pkg/logger"
	portalredis "clientportal/pkg/redis"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting clientportal...",
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.String("redis_addr", cfg.Redis.Addr),
	)

	// DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()

	// Redis
	rdb := portalredis.NewClient(cfg.Redis)
	defer rdb.Close()

	// Repositories
	projectRepo := repository.NewProjectRepository(dbConn, log)
	taskRepo := repository.NewTaskRepository(dbConn, log)
	updateRepo := repository.NewUpdateRepository(dbConn, log)
	documentRepo := repository.NewDocumentRepository(dbConn, log)
	model3dRepo := repository.NewModel3DRepository(dbConn, log)
	userRepo := repository.NewUserRepository(dbConn, log)

	store := repository.NewStore(projectRepo, taskRepo, updateRepo, documentRepo)

	// Services
	authService := auth.NewService(userRepo, cfg.JWT.Secret, log)
	assembler := dashboard.NewAssembler(store, auth.ContextIdentity{}, log)
	viewCache := dashboard.NewViewCache(rdb, time.Duration(cfg.Cache.TTLSeconds)*time.Second, log)

	// Handlers
	handlers := httpserver.Handlers{
		Auth:      handler.NewAuthHandler(authService, log),
		User:      handler.NewUserHandler(userRepo, authService, log),
		Project:   handler.NewProjectHandler(projectRepo, taskRepo, updateRepo, documentRepo, model3dRepo, viewCache, log),
		Task:      handler.NewTaskHandler(taskRepo, projectRepo, viewCache, log),
		Dashboard: handler.NewDashboardHandler(assembler, viewCache, log),
	}

	router := httpserver.NewRouter(handlers, authService, log, dbConn, rdb)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	log.Info("clientportal is fully initialized and running",
		zap.String("http_port", cfg.Server.Port),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down clientportal gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	dbConn.Close()
	log.Info("clientportal shutdown complete")
}
