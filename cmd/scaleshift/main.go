package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	adapthttp "scaleshift/internal/adapter/http"
	"scaleshift/internal/adapter/memory"
	"scaleshift/internal/adapter/postgres"
	"scaleshift/internal/adapter/redis"
	"scaleshift/internal/adapter/sqlite"
	"scaleshift/internal/app"
	"scaleshift/internal/domain"
)

func main() {
	if len(os.Args) == 3 && os.Args[1] == "hash-passcode" {
		hash, err := app.HashPasscode(os.Args[2])
		if err != nil {
			log.Fatalf("hash passcode: %v", err)
		}
		fmt.Println(hash)
		return
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	kv, sessions, closer, err := openStore(cfg)
	if err != nil {
		log.Fatalf("store open: %v", err)
	}
	defer func() { _ = closer.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracker := app.NewTracker(app.NewGateway(kv, cfg.KeyPrefix))
	if err := tracker.Load(ctx); err != nil {
		log.Printf("store degraded: %v", err)
	}

	authSvc := app.NewAuthService(sessions, cfg.PasscodeHash, cfg.OIDCAllowedSubject)
	srv := adapthttp.New(tracker, authSvc, cfg.WebDir)
	if cfg.OIDCIssuer != "" {
		oidcCfg, err := adapthttp.NewOIDCConfig(ctx, cfg.OIDCIssuer, cfg.OIDCClientID, cfg.OIDCClientSecret, cfg.OIDCRedirectURL)
		if err != nil {
			log.Fatalf("oidc: %v", err)
		}
		srv.WithOIDC(oidcCfg)
	}
	if !authSvc.Enabled() {
		log.Printf("no PASSCODE_HASH or OIDC_ALLOWED_SUBJECT set, api is open")
	}

	go purgeSessions(ctx, authSvc)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s (store %s)", cfg.Addr, cfg.StoreDriver)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Printf("stopped")
}

// openStore returns the key-value backend for the configured driver and the
// session repository that goes with it. Sessions live in postgres when it is
// the backend and in memory otherwise.
func openStore(cfg Config) (domain.KeyValueStore, domain.SessionRepository, io.Closer, error) {
	switch cfg.StoreDriver {
	case "memory":
		db := memory.New()
		return db, memory.NewSessionRepo(), db, nil
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Printf("sqlite store at %s", db.Path())
		return db, memory.NewSessionRepo(), db, nil
	case "postgres":
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		return db, postgres.NewSessionRepo(db), db, nil
	case "redis":
		rdb, err := redis.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, nil, err
		}
		store := redis.New(rdb)
		return store, memory.NewSessionRepo(), store, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func purgeSessions(ctx context.Context, authSvc *app.AuthService) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := authSvc.PurgeExpired(ctx); err != nil {
				log.Printf("purge sessions: %v", err)
			}
		}
	}
}
