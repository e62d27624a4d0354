package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"habit-tracker/internal/config"
	"habit-tracker/internal/httpapi"
	"habit-tracker/internal/repository"
	"habit-tracker/internal/service"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)

	authSvc := service.NewAuthService(userRepo, tokenRepo, cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userSvc := service.NewUserService(userRepo)
	habitSvc := service.NewHabitService(habitRepo)

	cleanup := service.NewCleanupService(tokenRepo, time.Local)
	if err := cleanup.Schedule(cfg.CleanupInterval); err != nil {
		log.Fatalf("schedule cleanup: %v", err)
	}
	cleanup.Start()
	defer cleanup.Stop()

	server := httpapi.New(authSvc, userSvc, habitSvc)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("[info] server listening on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
