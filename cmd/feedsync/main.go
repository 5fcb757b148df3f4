package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jessevdk/go-flags"

	"github.com/akovalev/feedsync/pkg/config"
	"github.com/akovalev/feedsync/pkg/content"
	"github.com/akovalev/feedsync/pkg/feed"
	"github.com/akovalev/feedsync/pkg/notify"
	"github.com/akovalev/feedsync/pkg/opml"
	"github.com/akovalev/feedsync/pkg/repository"
	"github.com/akovalev/feedsync/pkg/syncer"
	"github.com/akovalev/feedsync/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"config file path"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		log.Printf("[ERROR] failed to load config: %v", err)
		os.Exit(1)
	}

	setupLog(opts.Debug, cfg.Notifications.Telegram.Token)

	log.Printf("[INFO] starting feedsync version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, cfg, opts.Debug); err != nil {
		log.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1)
	}

	cancel()
	log.Print("[INFO] shutdown complete")
}

// run wires the components and blocks until the context is canceled
func run(ctx context.Context, cfg *config.Config, debug bool) error {
	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	if _, err := repos.Account.EnsureDefaultAccount(ctx); err != nil {
		return fmt.Errorf("ensure default account: %w", err)
	}

	fetcher := feed.NewFetcher(cfg.Fetch.Timeout, cfg.Fetch.UserAgent)
	feedParser := feed.NewParser()
	protocol := syncer.NewLocalProtocol(fetcher, feedParser, repos.Feed)

	var extractor syncer.Extractor
	if cfg.Extraction.Enabled {
		extractor = content.NewHTTPExtractor(content.Config{
			Timeout:       cfg.Extraction.Timeout,
			UserAgent:     cfg.Extraction.UserAgent,
			MinTextLength: cfg.Extraction.MinTextLength,
		})
	}

	dispatcher := makeDispatcher(cfg)

	policy := syncer.DefaultNotifyPolicy()
	if len(cfg.Notifications.PriorityKeywords) > 0 {
		policy.Priority = syncer.PriorityByKeywords(cfg.Notifications.PriorityKeywords)
	}

	orchestrator := syncer.NewOrchestrator(syncer.Params{
		Protocol:        protocol,
		Extractor:       extractor,
		FeedStore:       repos.Feed,
		ExtractionStore: repos.Article,
		Reconciler:      syncer.NewReconciler(repos.Article, cfg.Sync.RefreshSummaries),
		Preferences:     repos.Setting,
		Dispatcher:      dispatcher,
		Policy:          policy,
		MaxWorkers:      cfg.Sync.MaxWorkers,
		RunTimeout:      cfg.Sync.RunTimeout,
		MinTextLength:   cfg.Extraction.MinTextLength,
	})

	scheduler := syncer.NewScheduler(syncer.SchedulerParams{
		Runner:   orchestrator,
		Prefs:    repos.Setting,
		Metered:  func() bool { return false }, // server deployments have no metered link
		Interval: cfg.Sync.UpdateInterval,
	})
	scheduler.Start(ctx)
	defer scheduler.Stop()

	adapter := server.NewRepositoryAdapter(repos)
	srv := server.New(cfg, adapter, orchestrator, opml.NewTransactionalImporter(adapter, adapter), revision, debug)

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// makeDispatcher selects the notification channel, telegram when configured
// and plain logging otherwise
func makeDispatcher(cfg *config.Config) syncer.Dispatcher {
	tg := cfg.Notifications.Telegram
	if tg.Token == "" {
		return &notify.LogDispatcher{}
	}

	bot, err := tgbotapi.NewBotAPI(tg.Token)
	if err != nil {
		log.Printf("[WARN] telegram bot init failed, falling back to log notifications: %v", err)
		return &notify.LogDispatcher{}
	}
	log.Printf("[INFO] telegram notifications enabled for chat %d", tg.ChatID)
	return notify.NewTelegramDispatcher(bot, tg.ChatID)
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	var nonEmpty []string
	for _, s := range secs {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) > 0 {
		logOpts = append(logOpts, lgr.Secret(nonEmpty...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
