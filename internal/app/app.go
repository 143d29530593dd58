package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/linktracker/linktracker/internal/cache"
	"github.com/linktracker/linktracker/internal/config"
	"github.com/linktracker/linktracker/internal/httpserver"
	"github.com/linktracker/linktracker/internal/httpserver/deps"
	"github.com/linktracker/linktracker/internal/logger"
	"github.com/linktracker/linktracker/internal/sources/github"
	"github.com/linktracker/linktracker/internal/version"
)

type App struct {
	cfg    *config.Config
	logger logger.Logger
	server *httpserver.Server
	cache  *cache.BookmarkCache
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	ghClient := github.NewClient(github.ClientOptions{
		BaseURL: cfg.GitHubAPI,
		Owner:   cfg.GitHubOwner,
		Repo:    cfg.GitHubRepo,
		Token:   cfg.GitHubToken,
		Timeout: cfg.RequestTimeout,
		PerPage: cfg.PerPage,
	}, loggerClient)

	// Verify the backing repository before serving - fail fast if the
	// token or repo is wrong.
	loggerClient.Infof("Verifying GitHub repository %s/%s", cfg.GitHubOwner, cfg.GitHubRepo)
	verifyCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()
	if err := ghClient.VerifyRepo(verifyCtx); err != nil {
		loggerClient.Errorf("Repository verification failed for %s/%s: %v",
			cfg.GitHubOwner, cfg.GitHubRepo, err)
		os.Exit(1)
	}
	loggerClient.Infof("✅ Repository verified: %s/%s", cfg.GitHubOwner, cfg.GitHubRepo)

	bookmarkCache := cache.New(ghClient, loggerClient, cfg.CacheTTL)

	d := deps.Deps{
		Logger:    loggerClient,
		StartTime: time.Now(),
		Version:   version.Version,
		Commit:    version.Commit,
		BuildDate: version.BuildDate,
		GoVersion: version.GoVersion,
		Cache:     bookmarkCache,
		GitHub:    ghClient,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:    cfg,
		logger: loggerClient,
		server: server,
		cache:  bookmarkCache,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🔗 Starting linktracker v%s on %s", version.Version, a.cfg.ListenAddr)
	a.logger.Infof("linktracker %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Warm the cache so the first UI request answers from memory.
	// Failure is non-fatal; the cache retries on the next API call.
	warmCtx, cancel := context.WithTimeout(ctx, a.cfg.RequestTimeout)
	if _, err := a.cache.GetAll(warmCtx, false); err != nil {
		a.logger.Warn("initial bookmark fetch failed, will retry when API is called",
			logger.Error(err))
	}
	cancel()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("✅ linktracker stopped cleanly")
	return nil
}
