// Package main is the TaleTrail command-line client. With no arguments it
// starts an interactive shell; otherwise the arguments are run as a single
// shell command.
package main

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/atinyakov/taletrail/internal/client/api"
	"github.com/atinyakov/taletrail/internal/client/session"
	"github.com/atinyakov/taletrail/internal/client/shell"
	"github.com/atinyakov/taletrail/internal/client/storage"
	"github.com/atinyakov/taletrail/internal/config"
	"github.com/atinyakov/taletrail/internal/logger"
)

var (
	version   string
	buildDate string
)

func main() {
	os.Exit(run())
}

func run() int {
	options, err := config.ParseClient(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if options.Version {
		fmt.Printf("TaleTrail Client\nVersion: %s\nBuild Date: %s\n", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))
		return 0
	}

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		return 1
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, closeKV, err := storage.Open(ctx, options.Store, options.SessionFile, options.RedisURL)
	if err != nil {
		zapLogger.Error("failed to open token storage", zap.Error(err))
		return 1
	}
	defer func() { _ = closeKV() }()

	tokens, err := storage.NewTokenStore(ctx, kv)
	if err != nil {
		zapLogger.Error("failed to load tokens", zap.Error(err))
		return 1
	}

	httpClient, err := storage.NewHTTPClient(options.CAFile, options.Timeout)
	if err != nil {
		zapLogger.Error("failed to build http client", zap.Error(err))
		return 1
	}

	client := api.New(options.BaseURL, tokens, api.WithHTTPClient(httpClient), api.WithLogger(zapLogger))
	console := shell.NewConsole(os.Stdout)
	sess := session.New(client, tokens,
		session.WithNotifier(console),
		session.WithNavigator(console),
		session.WithLogger(zapLogger),
	)
	if err := sess.Init(ctx); err != nil {
		fmt.Fprintln(os.Stdout, "Your previous session could not be restored. Please log in again.")
	}

	sh := shell.New(client, sess, tokens, os.Stdin, os.Stdout, zapLogger)
	if len(options.Args) > 0 {
		err := sh.Exec(ctx, strings.Join(options.Args, " "))
		sh.Report(err)
		if err != nil {
			return 1
		}
		return 0
	}

	if err := sh.Run(ctx); err != nil {
		zapLogger.Debug("shell stopped", zap.Error(err))
	}
	return 0
}
