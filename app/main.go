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

	"github.com/lysyi3m/feed-notify/app/api"
	"github.com/lysyi3m/feed-notify/app/cfg"
	"github.com/lysyi3m/feed-notify/app/database"
	"github.com/lysyi3m/feed-notify/app/feed"
	"github.com/lysyi3m/feed-notify/app/notify"
	"github.com/lysyi3m/feed-notify/app/tasks"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	appCfg, err := cfg.Load(args)
	if err != nil {
		var usageErr *cfg.UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n\n%s", usageErr, usageErr.Usage)
			return 1
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if appCfg == nil {
		return 0
	}

	setupLogger(appCfg.Debug)

	slog.Info("Starting feed-notify", "version", appCfg.Version, "db", appCfg.DBPath)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		return 1
	}
	defer db.Close()

	itemRepo := database.NewItemRepository(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if appCfg.Maintenance() {
		task := tasks.NewClearItemsTask(appCfg.ClearPartition, itemRepo)
		task.Start()
		if err := task.Execute(ctx); err != nil {
			slog.Error("Task execution failed", "type", string(task.GetType()), "id", task.GetID(), "error", err)
			return 1
		}
		return 0
	}

	feedConfig, err := feed.LoadConfig(appCfg.FeedConfig)
	if err != nil {
		slog.Error("Failed to load feed configuration", "path", appCfg.FeedConfig, "error", err)
		return 1
	}

	keywords, err := feed.LoadWordList(appCfg.KeywordsFile, feed.KeywordsSection)
	if err != nil {
		slog.Error("Failed to load keywords", "path", appCfg.KeywordsFile, "error", err)
		return 1
	}
	stopwords, err := feed.LoadWordList(appCfg.StopwordsFile, feed.StopwordsSection)
	if err != nil {
		slog.Error("Failed to load stopwords", "path", appCfg.StopwordsFile, "error", err)
		return 1
	}

	policy := feed.NewPolicy(keywords, stopwords, feed.PolicyOptions{
		AlwaysNotifyPartition: feedConfig.Settings.AlwaysNotifyPartition,
		DescriptionLimit:      feedConfig.Settings.DescriptionLimit,
	})
	slog.Info("Notification policy loaded", "keywords", policy.KeywordCount(), "stopwords", policy.StopwordCount(), "always_notify_partition", feedConfig.Settings.AlwaysNotifyPartition)

	sender := notify.NewSender(appCfg.TelegramToken, appCfg.TelegramChatID)

	httpClient := &http.Client{}
	fetcher := feed.NewFetcher(httpClient, appCfg.UserAgent, appCfg.Cookies, feedConfig.Timeout())
	ingester := tasks.NewIngester(feedConfig, fetcher, feed.NewParser(), itemRepo, policy, sender)

	schedule, err := tasks.NewDailySchedule(feedConfig.Schedule.Times)
	if err != nil {
		slog.Error("Failed to build schedule", "error", err)
		return 1
	}

	partitionRange := feedConfig.PartitionRange()
	loadPartitions := func() ([]int, error) {
		return feed.LoadPartitions(appCfg.PartitionsFile, partitionRange)
	}

	minDelay, maxDelay := feedConfig.DelayBounds()
	scheduler := tasks.NewScheduler(ingester, loadPartitions, itemRepo, schedule, tasks.SchedulerOptions{
		PollInterval: feedConfig.PollInterval(),
		MinDelay:     minDelay,
		MaxDelay:     maxDelay,
	})

	var httpServer *http.Server
	if appCfg.MetricsPort != "" {
		httpServer = &http.Server{
			Addr:         ":" + appCfg.MetricsPort,
			Handler:      api.NewServer(api.NewHandler(itemRepo, scheduler, appCfg.Version)),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		go func() {
			slog.Info("Starting HTTP server", "port", appCfg.MetricsPort)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("HTTP server error", "error", err)
			}
		}()
	}

	scheduler.Run(ctx, mode(appCfg))

	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
		}
	}

	slog.Info("Shutdown complete")

	return 0
}

func mode(appCfg *cfg.Cfg) tasks.Mode {
	switch {
	case appCfg.Once:
		return tasks.ModeOnce
	case appCfg.ScheduleOnly:
		return tasks.ModeScheduleOnly
	default:
		return tasks.ModeRecurring
	}
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}
