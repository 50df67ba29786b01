package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/ashah/ftx-mirror/internal/auth"
	"github.com/ashah/ftx-mirror/internal/config"
	"github.com/ashah/ftx-mirror/internal/rest"
	"github.com/ashah/ftx-mirror/internal/stream"
	"github.com/ashah/ftx-mirror/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/watch.yaml", "path to config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	// Credentials usually live in .env during local development.
	_ = godotenv.Load()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting ftx-watch",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if len(cfg.Watch.Markets) == 0 {
		logger.Error("watch.markets is empty, nothing to do")
		os.Exit(1)
	}

	var creds *auth.Credentials
	if cfg.HasCredentials() {
		creds, err = auth.NewCredentials(cfg.Credentials.APIKey, cfg.Credentials.APISecret, cfg.Credentials.Subaccount)
		if err != nil {
			logger.Error("bad credentials", "error", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	restClient := rest.NewClient(
		creds,
		rest.WithBaseURL(cfg.Endpoints.RestURL),
		rest.WithLogger(logger),
		rest.WithTimeout(cfg.REST.Timeout),
		rest.WithRetries(cfg.REST.MaxRetries, cfg.REST.RetryBackoff),
	)

	// Confirm the markets exist before streaming them.
	markets, err := restClient.ListMarkets(ctx)
	if err != nil {
		logger.Error("failed to list markets", "error", err)
		os.Exit(1)
	}
	known := make(map[string]bool, len(markets))
	for _, m := range markets {
		known[m.Name] = m.Enabled
	}
	for _, m := range cfg.Watch.Markets {
		if !known[m] {
			logger.Error("unknown or disabled market", "market", m)
			os.Exit(1)
		}
	}

	client := stream.New(stream.Config{
		URL:                  cfg.Endpoints.WSURL,
		HandshakeTimeout:     cfg.Stream.HandshakeTimeout,
		PingInterval:         cfg.Stream.PingInterval,
		WriteTimeout:         cfg.Stream.WriteTimeout,
		FrameBufferSize:      cfg.Stream.FrameBufferSize,
		ReconnectBaseDelay:   cfg.Stream.ReconnectBaseDelay,
		ReconnectMaxDelay:    cfg.Stream.ReconnectMaxDelay,
		RetentionLimit:       cfg.Stream.RetentionLimit,
		FirstSnapshotTimeout: cfg.Stream.FirstSnapshotTimeout,
	}, creds, logger)

	if err := client.Connect(ctx); err != nil {
		logger.Error("failed to connect", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	g, ctx := errgroup.WithContext(ctx)
	for _, market := range cfg.Watch.Markets {
		market := market
		g.Go(func() error {
			return watchMarket(ctx, client, logger, market, cfg.Watch.PrintInterval)
		})
	}
	g.Go(func() error {
		select {
		case <-ctx.Done():
			return nil
		case <-client.Done():
			if err := client.Err(); err != nil {
				return err
			}
			return nil
		}
	})

	if err := g.Wait(); err != nil {
		logger.Error("watch stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

// watchMarket prints the top of book for one market at each interval.
func watchMarket(ctx context.Context, client *stream.Client, logger *slog.Logger, market string, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		ob, err := client.Orderbook(market)
		if err != nil {
			return fmt.Errorf("orderbook %s: %w", market, err)
		}
		if len(ob.Bids) == 0 && len(ob.Asks) == 0 {
			logger.Warn("book not synchronized yet", "market", market)
			continue
		}

		attrs := []any{"market", market, "time", ob.Time}
		if len(ob.Bids) > 0 {
			attrs = append(attrs, "bid", ob.Bids[0].Price, "bid_size", ob.Bids[0].Size)
		}
		if len(ob.Asks) > 0 {
			attrs = append(attrs, "ask", ob.Asks[0].Price, "ask_size", ob.Asks[0].Size)
		}
		logger.Info("top of book", attrs...)
	}
}
