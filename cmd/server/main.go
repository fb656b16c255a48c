// Package main runs the TaleTrail stub backend: the same /api surface as the
// hosted service, backed by an in-memory catalog and users kept in memory or
// PostgreSQL. It serves HTTPS when a certificate is configured.
package main

import (
	"cmp"
	"context"
	"crypto/rand"
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/taletrail/internal/config"
	"github.com/atinyakov/taletrail/internal/db"
	"github.com/atinyakov/taletrail/internal/logger"
	"github.com/atinyakov/taletrail/internal/repository"
	"github.com/atinyakov/taletrail/internal/server/handler/http"
	"github.com/atinyakov/taletrail/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, config file and environment configuration.
	options, err := config.ParseServer(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))
	if options.Version {
		return
	}

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Users live in PostgreSQL when a DSN is configured.
	var users service.UserRepository = repository.NewMemoryUserRepository()
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(ctx, options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		defer postgresDB.Close()
		users = repository.NewPostgresUserRepository(postgresDB)
		zapLogger.Info("using postgres user repository")
	}

	secret := []byte(options.JWTSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			zapLogger.Fatal("failed to generate jwt secret", zap.Error(err))
		}
		zapLogger.Warn("no JWT secret configured, tokens will not survive a restart")
	}

	store := repository.NewStore()
	store.Seed()
	authService := service.NewAuthService(users, secret, options.TokenTTL)

	router := http.NewRouter(http.Handlers{
		Auth:    &http.AuthHandler{AuthService: authService},
		Catalog: &http.CatalogHandler{Store: store},
		Library: &http.LibraryHandler{Store: store},
		Social:  &http.SocialHandler{Store: store, Users: authService},
	}, authService, zapLogger)

	server := &nethttp.Server{
		Addr:              options.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	useTLS := options.TLSCert != "" && options.TLSKey != ""
	if useTLS {
		cert, err := tls.LoadX509KeyPair(options.TLSCert, options.TLSKey)
		if err != nil {
			zapLogger.Fatal("failed to load server TLS cert/key", zap.Error(err))
		}
		server.TLSConfig = &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	zapLogger.Info("starting server", zap.String("addr", options.Addr), zap.Bool("tls", useTLS))
	if useTLS {
		err = server.ListenAndServeTLS("", "")
	} else {
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}
