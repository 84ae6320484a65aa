package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/lysyi3m/podcast-comb/app/api"
	"github.com/lysyi3m/podcast-comb/app/cfg"
	"github.com/lysyi3m/podcast-comb/app/config"
	"github.com/lysyi3m/podcast-comb/app/feed"
	"github.com/lysyi3m/podcast-comb/app/tasks"
)

func main() {
	// Load .env file if exists
	_ = godotenv.Load()

	appCfg, err := cfg.Load(os.Args[1:])
	if err != nil {
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	setupLogger(appCfg.Debug)

	feedConfig := appCfg.FeedConfig()
	if appCfg.FeedConfigPath != "" {
		definition, err := config.NewLoader().Load(appCfg.FeedConfigPath)
		if err != nil {
			slog.Error("Failed to load feed definition", "path", appCfg.FeedConfigPath, "error", err)
			os.Exit(1)
		}
		definition.ApplyTo(feedConfig)
	}

	slog.Info("Configuration loaded",
		"version", appCfg.Version,
		"feed", feedConfig.Name,
		"source", feedConfig.SourceURL,
		"output", feedConfig.OutputPath,
		"keywords", feedConfig.Keywords,
		"min_matches", feedConfig.MinMatches)

	httpClient := &http.Client{}
	fetcher := feed.NewFetcher(httpClient, appCfg.UserAgent)
	parser := feed.NewParser()
	selector := feed.NewSelector(feed.NewDateNormalizer())
	assembler := feed.NewAssembler(feedConfig)
	generator := feed.NewGenerator(appCfg.Version, appCfg.SelfURL())

	newBuildTask := func() *tasks.BuildFeedTask {
		return tasks.NewBuildFeedTask(feedConfig, fetcher, parser, selector, assembler, generator)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !appCfg.Serve {
		task := newBuildTask()
		task.Start()
		if err := task.Execute(ctx); err != nil {
			slog.Error("Build failed, no output written", "feed", feedConfig.Name, "error", err)
			stop()
			os.Exit(1)
		}
		return
	}

	if err := serve(ctx, appCfg, feedConfig, newBuildTask); err != nil {
		slog.Error("Server error", "error", err)
		stop()
		os.Exit(1)
	}
}

func serve(ctx context.Context, appCfg *cfg.Cfg, feedConfig *feed.Config, newBuildTask func() *tasks.BuildFeedTask) error {
	scheduler := tasks.NewScheduler(newBuildTask, time.Duration(appCfg.Interval)*time.Second)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(feedConfig, scheduler, newBuildTask)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      api.NewServer(handler, appCfg.APIAccessKey),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Starting HTTP server", "port", appCfg.Port, "feed", fmt.Sprintf("http://localhost:%s/feed.xml", appCfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down server gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown error: %w", err)
		}
		slog.Info("HTTP server stopped")
		return nil
	})

	return g.Wait()
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
