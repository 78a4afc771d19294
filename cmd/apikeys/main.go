package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	remotekvadapter "github.com/jay-reddin/api-keys/internal/adapter/driven/remotekv"
	sqliteadapter "github.com/jay-reddin/api-keys/internal/adapter/driven/sqlite"
	httphandler "github.com/jay-reddin/api-keys/internal/adapter/driving/http"
	webhandler "github.com/jay-reddin/api-keys/internal/adapter/driving/web"
	"github.com/jay-reddin/api-keys/internal/application"
	"github.com/jay-reddin/api-keys/internal/config"
	"github.com/jay-reddin/api-keys/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load .env if present, then configuration from the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"namespace_key", cfg.NamespaceKey,
		"remote_store", cfg.HasRemoteStore(),
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Select the KV store: remote service when configured, local
	// sqlite database otherwise.
	var kv driven.KV
	if cfg.HasRemoteStore() {
		client, err := remotekvadapter.New(cfg.KVURL, cfg.KVToken)
		if err != nil {
			return err
		}
		kv = client
		slog.Info("using remote key-value store", "url", cfg.KVURL)
	} else {
		db, err := sqliteadapter.NewDB(cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
		if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
			return err
		}
		kv = sqliteadapter.NewKVRepo(db)
		slog.Info("using local key-value store", "path", cfg.DBPath)
	}

	// 4. Wire the application services.
	store := application.NewCollectionStore(kv, cfg.NamespaceKey)
	keySvc := application.NewKeyService(store, slog.Default())

	// An unreachable store at startup is not fatal; the GUI starts on an
	// empty collection and surfaces errors per operation.
	if err := keySvc.Load(ctx); err != nil {
		slog.Error("initial key load failed", "error", err)
	}

	// 5. Create HTTP handler and register API routes.
	apiHandler := httphandler.NewHandler(keySvc, slog.Default())
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, apiHandler)

	// 6. Create web handler and register GUI routes.
	webHandler := webhandler.NewHandler(slog.Default())
	webhandler.RegisterRoutes(mux, webHandler)

	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("apikeys started", "listen_addr", cfg.ListenAddr)

	// 7. Wait for shutdown signal, then drain the HTTP server.
	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
