package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/skinbot/config"
	"github.com/alejandrodnm/skinbot/internal/adapters/market"
	"github.com/alejandrodnm/skinbot/internal/adapters/notify"
	"github.com/alejandrodnm/skinbot/internal/adapters/pricing"
	"github.com/alejandrodnm/skinbot/internal/adapters/storage"
	"github.com/alejandrodnm/skinbot/internal/domain"
	"github.com/alejandrodnm/skinbot/internal/ports"
	"github.com/alejandrodnm/skinbot/internal/scanner"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	once := flag.Bool("once", false, "run one scan cycle and exit")
	dryRun := flag.Bool("dry-run", false, "use local fixtures instead of real APIs")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	table := flag.Bool("table", false, "print full deal table (default: compact 1-line)")
	hunt := flag.Bool("hunt", false, "scan once + run hold decisions over the ranked deals")
	treasures := flag.Bool("treasures", false, "print stored treasures and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Info("skinbot starting",
		"config", *configPath,
		"interval", cfg.ScanInterval(),
		"games", cfg.Scanner.Games,
		"dry_run", *dryRun,
		"once", *once,
		"hunt", *hunt,
	)

	var store *storage.SQLiteStorage
	if !*dryRun {
		store, err = storage.NewSQLiteStorage(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer store.Close()
	}

	notifier := notify.NewConsole(*table || *hunt)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *treasures {
		printTreasures(ctx, store, notifier)
		return
	}

	scanCfg := buildScanConfig(cfg)
	scanCfg.DryRun = *dryRun || *once || *hunt

	var (
		provider   ports.MarketProvider
		sales      ports.SalesProvider
		comparator ports.PriceComparator
	)
	if *dryRun {
		fixtures := newFixtureProvider()
		provider, sales = fixtures, fixtures
	} else {
		client := market.NewClient(cfg.API.MarketBase, cfg.API.MarketAPIKey)
		provider, sales = client, client
		comparator = pricing.NewComparator(buildPlatforms(cfg), pricing.NewCache(cfg.CacheTTL()))
	}

	var scanStore ports.Storage
	if store != nil {
		scanStore = store
	}
	s := scanner.New(scanCfg, provider, sales, comparator, scanStore, notifier)

	if *hunt {
		runTreasureHunt(ctx, cfg, s, scanStore, notifier)
		slog.Info("skinbot stopped cleanly")
		return
	}

	if err := s.Run(ctx); err != nil {
		slog.Error("scanner exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("skinbot stopped cleanly")
}

// buildScanConfig traduce la configuración YAML a la del scanner.
func buildScanConfig(cfg *config.Config) scanner.Config {
	scanCfg := scanner.DefaultConfig()
	scanCfg.ScanInterval = cfg.ScanInterval()
	scanCfg.Games = parseGames(cfg.Scanner.Games)
	scanCfg.Limit = cfg.Scanner.Limit
	scanCfg.MinPrice = domain.DollarsToCents(cfg.Scanner.MinPriceUSD)
	scanCfg.MaxPrice = domain.DollarsToCents(cfg.Scanner.MaxPriceUSD)
	scanCfg.PriceDiffThreshold = cfg.Scanner.PriceDiffThreshold
	scanCfg.FeeRate = cfg.Scanner.FeeRate
	scanCfg.MaxResults = cfg.Scanner.MaxResults
	scanCfg.Workers = cfg.Scanner.Workers
	scanCfg.Filter = scanner.FilterConfig{
		MinDiscountPercent: cfg.Scanner.MinDiscountPct,
		MaxTradeLockHours:  cfg.Scanner.MaxTradeLockHours,
		Blacklist:          cfg.Scanner.Blacklist,
	}
	return scanCfg
}

// parseGames convierte los nombres de juego de la config, saltando con un
// warning los que no existen.
func parseGames(names []string) []domain.Game {
	var games []domain.Game
	for _, name := range names {
		game, ok := domain.ParseGame(name)
		if !ok {
			slog.Warn("unknown game in config, skipping", "game", name)
			continue
		}
		games = append(games, game)
	}
	if len(games) == 0 {
		games = domain.AllGames()
	}
	return games
}

// buildPlatforms traduce los platforms externos de la config, con los
// defaults si no hay ninguno configurado.
func buildPlatforms(cfg *config.Config) []pricing.Platform {
	if len(cfg.API.Platforms) == 0 {
		return pricing.DefaultPlatforms()
	}
	platforms := make([]pricing.Platform, 0, len(cfg.API.Platforms))
	for _, p := range cfg.API.Platforms {
		platforms = append(platforms, pricing.Platform{
			Name:    p.Name,
			BaseURL: p.BaseURL,
			SellFee: p.SellFee,
		})
	}
	return platforms
}

// printTreasures imprime los treasures registrados, el más reciente primero.
func printTreasures(ctx context.Context, store *storage.SQLiteStorage, notifier *notify.Console) {
	if store == nil {
		slog.Error("treasures mode requires storage (remove -dry-run)")
		os.Exit(1)
	}

	decisions, err := store.GetTreasures(ctx)
	if err != nil {
		slog.Error("failed to load treasures", "err", err)
		os.Exit(1)
	}
	if len(decisions) == 0 {
		slog.Info("no treasures stored yet")
		return
	}

	for _, d := range decisions {
		if err := notifier.NotifyTreasure(ctx, d); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}
	slog.Info("treasures printed", "count", len(decisions))
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
