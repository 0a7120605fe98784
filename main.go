package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"financetools/internal/bse"
	"financetools/internal/cache"
	"financetools/internal/config"
	"financetools/internal/coordinator"
	"financetools/internal/fetcher"
	"financetools/internal/indian"
	"financetools/internal/marketdata"
	"financetools/internal/mcp"
	"financetools/internal/metrics"
	"financetools/internal/notes"
	"financetools/internal/nse"
	"financetools/internal/ratelimit"
	"financetools/internal/server"
	"financetools/internal/stdio"
	"financetools/internal/tool"
	"financetools/internal/yahoo"
)

const (
	serverName    = "financetools"
	serverVersion = "0.1.0"
)

func main() {
	// Cancel on interrupt so every transport shuts down cleanly
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "financetools: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := config.NewFlagSet(serverName)
	flags.SetOutput(stderr)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// stdout carries the stdio protocol, so logs always go to stderr
	logger := newLogger(stderr, cfg.LogLevel)
	slog.SetDefault(logger)

	logger.Info("financetools_starting",
		"transport", cfg.Transport,
		"cache_backend", cfg.Cache.Backend,
		"notes_file", cfg.NotesFile,
	)

	store, closeCache, err := newCache(cfg.Cache, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	m := metrics.New()
	registry := buildRegistry(cfg, store, m, logger)

	switch cfg.Transport {
	case config.TransportHTTP:
		dispatcher := mcp.NewDispatcher(registry,
			mcp.ServerInfo{Name: serverName, Version: serverVersion},
			mcp.WithTimeout(cfg.ToolTimeout),
			mcp.WithLogger(logger),
		)
		srv := server.New(server.Config{
			Port:            cfg.Port,
			ShutdownTimeout: cfg.ShutdownTimeout,
		}, registry, dispatcher, m.Handler(), logger)
		return srv.Run(ctx)

	case config.TransportBatch:
		summary, err := coordinator.New(registry, cfg.Watchlist, coordinator.WithOutput(stdout)).Run(ctx)
		if err != nil {
			return fmt.Errorf("batch run: %w", err)
		}
		logger.Info("batch_completed", "succeeded", summary.Succeeded, "failed", summary.Failed)
		return nil

	default:
		s, err := stdio.NewServer(serverName, serverVersion, registry)
		if err != nil {
			return err
		}
		return stdio.Serve(ctx, s, stdin, stdout, logger)
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	logLevel := slog.LevelInfo
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// newCache returns the configured response cache, or nil when caching is off.
func newCache(cfg config.CacheConfig, logger *slog.Logger) (cache.Cache, func(), error) {
	switch cfg.Backend {
	case config.CacheMemory:
		return cache.NewMemory(cfg.TTL, cfg.MaxItems), func() {}, nil
	case config.CacheRedis:
		r, err := cache.NewRedis(cfg.RedisURL, cfg.RedisPassword, cfg.TTL, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis cache: %w", err)
		}
		return r, func() {
			if err := r.Close(); err != nil {
				logger.Warn("redis_close_failed", "error", err)
			}
		}, nil
	default:
		return nil, func() {}, nil
	}
}

// buildRegistry wires provider clients into the three tool groups.
func buildRegistry(cfg *config.Config, store cache.Cache, m *metrics.Metrics, logger *slog.Logger) *tool.Registry {
	limiter := ratelimit.New(map[ratelimit.API]float64{
		ratelimit.APINSE:   cfg.NSE.RateLimit,
		ratelimit.APIBSE:   cfg.BSE.RateLimit,
		ratelimit.APIYahoo: cfg.Yahoo.RateLimit,
	})

	options := []fetcher.Option{fetcher.WithLimiter(limiter)}
	if store != nil {
		options = append(options, fetcher.WithCache(store))
	}

	httpOpts := fetcher.HTTPOptions{
		UserAgent:  cfg.HTTP.UserAgent,
		Timeout:    cfg.HTTP.RequestTimeout,
		RetryCount: cfg.HTTP.RetryCount,
	}

	nseClient := nse.New(nse.Config{
		BaseURL:      cfg.NSE.BaseURL,
		HTTP:         httpOpts,
		PrimeSession: cfg.NSE.PrimeSession,
	}, options...)
	bseClient := bse.New(bse.Config{
		BaseURL: cfg.BSE.BaseURL,
		SiteURL: cfg.BSE.SiteURL,
		HTTP:    httpOpts,
	}, options...)
	yahooClient := yahoo.New(yahoo.Config{
		BaseURL: cfg.Yahoo.BaseURL,
		Crumb:   cfg.Yahoo.Crumb,
		HTTP:    httpOpts,
	}, options...)

	registry := tool.NewRegistry(tool.WithObserver(m), tool.WithLogger(logger))
	registry.MustRegister(indian.New(nseClient, bseClient).Tools()...)
	registry.MustRegister(marketdata.New(yahooClient, marketdata.WithNewsCount(cfg.Yahoo.NewsCount)).Tools()...)
	registry.MustRegister(notes.New(cfg.NotesFile).Tools()...)
	return registry
}
