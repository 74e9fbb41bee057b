// Package logging provides config-driven categorized file-based logging for teamforge.
// Logs are written to .teamforge/logs/ because the terminal belongs to the TUI.
// Logging is controlled by logging.debug_mode - when false, every logger is a no-op.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"teamforge/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot      Category = "boot"      // Startup, metadata load, health probe
	CategoryAPI       Category = "api"       // Outbound HTTP calls
	CategoryCatalog   Category = "catalog"   // Catalog browsing
	CategoryRecommend Category = "recommend" // Recommendation workflow
	CategorySynergy   Category = "synergy"   // Synergy inspection
	CategoryEditor    Category = "editor"    // Record editing and removal
	CategoryRouter    Category = "router"    // Section/tab switching
	CategoryCLI       Category = "cli"       // Headless subcommands
)

// AllCategories lists every category in a stable order.
var AllCategories = []Category{
	CategoryBoot, CategoryAPI, CategoryCatalog, CategoryRecommend,
	CategorySynergy, CategoryEditor, CategoryRouter, CategoryCLI,
}

// Registry hands out one named zap logger per category over a shared core.
type Registry struct {
	cfg  config.LoggingConfig
	core zapcore.Core
	file *os.File

	mu      sync.RWMutex
	loggers map[Category]*zap.Logger
}

// NewRegistry builds a registry over an existing core. Tests pass an
// observer core here.
func NewRegistry(core zapcore.Core, cfg config.LoggingConfig) *Registry {
	return &Registry{cfg: cfg, core: core, loggers: make(map[Category]*zap.Logger)}
}

// Nop returns a registry whose loggers discard everything.
func Nop() *Registry {
	return NewRegistry(zapcore.NewNopCore(), config.LoggingConfig{})
}

// Open creates the logs directory under dir and a registry writing to
// <dir>/logs/<date>_teamforge.log. With debug mode off nothing is created
// and a no-op registry is returned.
func Open(dir string, cfg config.LoggingConfig) (*Registry, error) {
	if !cfg.DebugMode {
		return NewRegistry(zapcore.NewNopCore(), cfg), nil
	}
	if dir == "" {
		return nil, fmt.Errorf("log directory required")
	}

	logsDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	date := time.Now().Format("2006-01-02")
	logPath := filepath.Join(logsDir, date+"_teamforge.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if cfg.Format == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(file), parseLevel(cfg.Level))
	r := NewRegistry(core, cfg)
	r.file = file

	boot := r.Get(CategoryBoot)
	boot.Info("logging initialized",
		zap.String("file", logPath),
		zap.String("level", cfg.Level),
		zap.Int("category_filters", len(cfg.Categories)))

	return r, nil
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// IsCategoryEnabled returns whether a specific category is enabled.
func (r *Registry) IsCategoryEnabled(category Category) bool {
	return r.cfg.IsCategoryEnabled(string(category))
}

// Get returns (or creates) the logger for the given category.
// Returns a no-op logger if debug mode or the category is disabled.
func (r *Registry) Get(category Category) *zap.Logger {
	if r == nil || !r.IsCategoryEnabled(category) {
		return zap.NewNop()
	}

	r.mu.RLock()
	if l, ok := r.loggers[category]; ok {
		r.mu.RUnlock()
		return l
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.loggers[category]; ok {
		return l
	}
	l := zap.New(r.core).Named(string(category))
	r.loggers[category] = l
	return l
}

// Close flushes buffered entries and closes the log file.
func (r *Registry) Close() error {
	if r == nil {
		return nil
	}
	_ = r.core.Sync()
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// =============================================================================
// TIMING HELPERS
// =============================================================================

// Timer helps measure operation duration
type Timer struct {
	logger *zap.Logger
	op     string
	start  time.Time
}

// StartTimer begins timing an operation on the given logger.
func StartTimer(logger *zap.Logger, operation string) *Timer {
	return &Timer{logger: logger, op: operation, start: time.Now()}
}

// Stop ends the timer and logs the duration at debug level.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Debug("operation completed", zap.String("op", t.op), zap.Duration("elapsed", elapsed))
	return elapsed
}

// StopWithThreshold logs a warning if the duration exceeds threshold.
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		t.logger.Warn("slow operation",
			zap.String("op", t.op),
			zap.Duration("elapsed", elapsed),
			zap.Duration("threshold", threshold))
	} else {
		t.logger.Debug("operation completed", zap.String("op", t.op), zap.Duration("elapsed", elapsed))
	}
	return elapsed
}
