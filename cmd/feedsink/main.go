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
	"github.com/jessevdk/go-flags"

	"feedsink/pkg/config"
	"feedsink/pkg/domain"
	"feedsink/pkg/feed"
	"feedsink/pkg/refresh"
	"feedsink/pkg/repository"
	"feedsink/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"f" long:"config" env:"CONFIG" default:"config.yml" description:"config file path"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address (overrides config)"`

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

	setupLog(opts.Debug, opts.NoColor)

	log.Printf("[INFO] starting feedsink version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}

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
		if closeErr := repos.Close(); closeErr != nil {
			log.Printf("[WARN] failed to close database: %v", closeErr)
		}
	}()

	if err := seedSources(ctx, cfg, repos.Source); err != nil {
		return fmt.Errorf("seed sources: %w", err)
	}

	parser := feed.NewParser(cfg.Fetch.Timeout, cfg.Fetch.UserAgent)
	avatars := feed.NewAvatarResolver(cfg.Fetch.Timeout, cfg.Fetch.UserAgent)
	coordinator := refresh.NewCoordinator(repos.Source, repos.Entry, repos.FetchLog, parser, avatars)

	sched := refresh.NewScheduler(repos.Source, coordinator, refresh.SchedulerConfig{
		PollInterval: cfg.Schedule.PollInterval,
		MaxWorkers:   cfg.Schedule.MaxWorkers,
	})
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(cfg, repos.Source, repos.Entry, coordinator, revision, opts.Debug)
	return srv.Run(ctx)
}

// seedSources registers configured sources, skipping ones already present
func seedSources(ctx context.Context, cfg *config.Config, sources *repository.SourceRepository) error {
	for _, sc := range cfg.Sources {
		interval := sc.IntervalMinutes
		if interval == 0 {
			interval = cfg.Fetch.DefaultIntervalMinutes
		}
		src := &domain.Source{
			Name:                sc.Name,
			FeedURL:             sc.FeedURL,
			HomepageURL:         sc.HomepageURL,
			Description:         sc.Description,
			Language:            sc.Language,
			Category:            sc.Category,
			Active:              !sc.Disabled,
			SyncIntervalMinutes: interval,
		}
		stored, err := sources.EnsureSource(ctx, src)
		if err != nil {
			return fmt.Errorf("register source %q: %w", sc.Name, err)
		}
		log.Printf("[INFO] source %q ready (id %d)", stored.Name, stored.ID)
	}
	return nil
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = append(logOpts, lgr.Debug)
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
