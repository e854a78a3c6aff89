package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oxtailbadger/mise/internal/database"
	"github.com/oxtailbadger/mise/internal/logging"
	"github.com/oxtailbadger/mise/internal/server"
)

func main() {
	port := os.Getenv("MISE_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("MISE_DB_PATH")
	if dbPath == "" {
		dbPath = "mise.db"
	}

	logger := logging.Setup(os.Getenv("MISE_LOG_LEVEL"))

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	cfg := server.Config{
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
	}
	// The hash is base64-encoded so bcrypt's $ characters survive env files.
	if enc := os.Getenv("MISE_PASSWORD_HASH_B64"); enc != "" {
		hash, err := base64.StdEncoding.DecodeString(enc)
		if err != nil {
			log.Fatalf("invalid MISE_PASSWORD_HASH_B64: %v", err)
		}
		cfg.PasswordHash = hash
	} else {
		logger.Warn("MISE_PASSWORD_HASH_B64 not set, login disabled")
	}

	srv := server.New(db, cfg, logger)

	// Periodic cleanup of expired sessions and stale rate limit buckets.
	cleanupDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n, err := srv.SessionStore().DeleteExpired(); err != nil {
					logger.Error("session cleanup failed", "error", err)
				} else if n > 0 {
					logger.Info("deleted expired sessions", "count", n)
				}
				srv.RateLimiter().Cleanup()
			case <-cleanupDone:
				return
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Mise running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	close(cleanupDone)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
