package observability

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jask/jaskcalc/internal/config"
)

// NewLogger builds a JSON file logger. The terminal belongs to the TUI, so
// nothing is ever written to stdout or stderr. An empty path yields a no-op
// logger.
func NewLogger(cfg config.LogConfig) (*zap.Logger, error) {
	if cfg.Path == "" {
		return zap.NewNop(), nil
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir log dir: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{cfg.Path}
	zc.ErrorOutputPaths = []string{cfg.Path}
	zc.Sampling = nil

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// NewSessionID identifies one run of the calculator in the logs.
func NewSessionID() string {
	return uuid.New().String()
}

// SyncLogger flushes buffered entries, ignoring the harmless errors some
// file descriptors return on sync.
func SyncLogger(logger *zap.Logger) {
	_ = logger.Sync()
}
