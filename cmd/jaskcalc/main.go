package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/jask/jaskcalc/internal/config"
	"github.com/jask/jaskcalc/internal/keys"
	"github.com/jask/jaskcalc/internal/observability"
	"github.com/jask/jaskcalc/internal/tui"
)

func main() {
	printKeymap := flag.Bool("print-keymap", false, "Print the effective keymap as TOML and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if *printKeymap {
		if err := writeKeymap(os.Stdout, cfg.Keys.Path, zap.NewNop()); err != nil {
			log.Fatalf("keymap: %v", err)
		}
		return
	}

	if err := run(context.Background(), cfg); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	logger, err := observability.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logger = logger.With(zap.String("session_id", observability.NewSessionID()))
	defer observability.SyncLogger(logger)

	provider, reader := observability.NewSessionMeterProvider()
	defer func() { _ = provider.Shutdown(ctx) }()
	otel.SetMeterProvider(provider)

	metrics, err := observability.NewMetrics(otel.Meter("jaskcalc"))
	if err != nil {
		logger.Error("metrics setup failed", zap.Error(err))
		return fmt.Errorf("metrics: %w", err)
	}

	registry := loadKeymap(cfg.Keys.Path, logger)

	logger.Info("session started",
		zap.Stringer("theme", cfg.Theme()),
		zap.Int("max_width", cfg.UI.MaxWidth),
		zap.Bool("mouse", cfg.UI.Mouse),
	)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(tui.New(ctx, tui.Options{
		Theme:    cfg.Theme(),
		MaxWidth: cfg.UI.MaxWidth,
		Keys:     registry,
		Logger:   logger,
		Metrics:  metrics,
	}), opts...)
	_, runErr := p.Run()
	if runErr != nil {
		logger.Error("program failed", zap.Error(runErr))
	}

	logSummary(ctx, logger, reader)
	return runErr
}

// loadKeymap applies the optional keymap file. A broken file is logged and
// the default bindings are used instead.
func loadKeymap(path string, logger *zap.Logger) *keys.Registry {
	registry := keys.NewRegistry()
	overrides, err := keys.LoadOverrides(path)
	if err != nil {
		logger.Warn("keymap ignored", zap.String("path", path), zap.Error(err))
		return registry
	}
	if len(overrides) == 0 {
		return registry
	}
	if err := registry.ApplyKeybindingConfig(overrides); err != nil {
		logger.Warn("keymap ignored", zap.String("path", path), zap.Error(err))
		return registry
	}
	logger.Info("keymap loaded", zap.String("path", path), zap.Int("overrides", len(overrides)))
	return registry
}

// writeKeymap encodes the effective keymap, defaults plus the file at path,
// as TOML.
func writeKeymap(w io.Writer, path string, logger *zap.Logger) error {
	return keys.EncodeOverrides(w, loadKeymap(path, logger).ExportKeybindingConfig())
}

func logSummary(ctx context.Context, logger *zap.Logger, reader observability.Reader) {
	totals, err := observability.Totals(ctx, reader)
	if err != nil {
		logger.Warn("session summary unavailable", zap.Error(err))
		return
	}
	kinds, err := observability.CountsByAttribute(ctx, reader, observability.MetricErrors, "kind")
	if err != nil {
		logger.Warn("session summary unavailable", zap.Error(err))
		return
	}
	logger.Info("session summary",
		zap.Int64("presses", totals[observability.MetricPresses]),
		zap.Int64("results", totals[observability.MetricResults]),
		zap.Int64("errors", totals[observability.MetricErrors]),
		zap.Any("errors_by_kind", kinds),
	)
}
