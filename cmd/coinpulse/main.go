package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"CoinPulse/internal/collector"
	"CoinPulse/internal/config"
	"CoinPulse/internal/logger"
	"CoinPulse/internal/scheduler"
)

func main() {
	log := logger.New()

	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("load .env")
	}

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	flag.StringVar(&cfgPath, "config", cfgPath, "path to the YAML config file")
	symbols := flag.String("symbols", "", "comma separated symbols, overrides the config")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	if *symbols != "" {
		cfg.Symbols = config.SplitSymbols(*symbols)
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("config validation")
	}
	if err := log.Configure(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.MaxAge); err != nil {
		log.WithError(err).Fatal("configure logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, log); err != nil {
		log.WithError(err).Error("coinpulse failed")
		stop()
		os.Exit(1)
	}
}

// run takes one snapshot and, when a cron expression is configured, keeps
// taking them until ctx is done.
func run(ctx context.Context, cfg *config.Config, stdout io.Writer, log *logger.Log) error {
	fetcher, err := collector.NewHTTPFetcher(collector.HTTPOptions{
		ProxyURL:  cfg.HTTP.Proxy,
		Timeout:   cfg.HTTP.Timeout,
		UserAgent: cfg.HTTP.UserAgent,
	}, log.WithComponent("http"))
	if err != nil {
		return fmt.Errorf("init http fetcher: %w", err)
	}

	col := collector.NewCollector(
		collector.NewBinanceCollector(fetcher, cfg.Endpoints.BinanceSpot, cfg.Endpoints.BinanceFutures, cfg.QuoteAsset, log.WithComponent("binance")),
		collector.NewCoinbaseCollector(fetcher, cfg.Endpoints.Coinbase, cfg.Fiat, log.WithComponent("coinbase")),
		collector.NewOKXCollector(fetcher, cfg.Endpoints.OKX, cfg.QuoteAsset, log.WithComponent("okx")),
		cfg.Symbols,
		log.WithComponent("collector"),
	)

	sched := scheduler.NewScheduler(ctx, col, stdout, log.WithComponent("scheduler"))
	sched.RunNow()

	if cfg.Schedule.Cron == "" {
		return nil
	}
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	log.WithComponent("main").Info("CoinPulse is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	log.WithComponent("main").Info("shutdown signal received, stopping...")
	return nil
}
