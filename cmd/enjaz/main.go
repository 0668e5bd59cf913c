// Command enjaz runs the goal tracker TUI.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/enjaz/internal/app"
	"github.com/sandeepkv93/enjaz/internal/config"
	"github.com/sandeepkv93/enjaz/internal/planner"
	"github.com/sandeepkv93/enjaz/internal/scheduler"
	"github.com/sandeepkv93/enjaz/internal/storage"
	"github.com/sandeepkv93/enjaz/internal/tracker"
	"github.com/sandeepkv93/enjaz/internal/update"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logFile, err := app.OpenLogFile(cfg.Log.Path)
	if err != nil {
		log.Fatalf("open log file: %v", err)
	}
	defer logFile.Close()
	logger := app.NewLogger(cfg.Log, logFile)

	if err := run(cfg, logger); err != nil {
		logger.Error("enjaz stopped", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "enjaz failed: %v\n", err)
		logFile.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := openKV(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}
	defer kv.Close()

	store := storage.NewStateStore(kv, storage.Defaults{
		MonthlyLimit:   cfg.Budget.MonthlyLimit(),
		DailyLimit:     cfg.Budget.DailyLimit(),
		StartingPoints: cfg.Budget.StartingPoints,
	}, logger)
	state := store.Load(ctx)

	assistant := newAssistant(cfg.AI, logger)
	tr := tracker.New(state, store, assistant, logger, tracker.Options{CarryOverUnspent: cfg.Budget.CarryOverUnspent})

	engine := scheduler.NewEngine(cfg.UI.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	logger.Info("enjaz started",
		slog.String("storage", cfg.Storage.Driver),
		slog.Bool("assistant", cfg.AI.Enabled()),
		slog.Int("goals", len(state.Goals)),
	)

	model := update.NewModel(update.Deps{
		Tracker:   tr,
		Planner:   planner.New(assistant, logger),
		Scheduler: engine,
		Log:       logger,
		Context:   ctx,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	if err := tr.SaveErr(); err != nil {
		return fmt.Errorf("last save failed: %w", err)
	}
	return nil
}

func openKV(ctx context.Context, cfg config.StorageConfig) (storage.KV, error) {
	switch cfg.Driver {
	case config.DriverFile:
		return storage.NewFileKV(cfg.Path, cfg.Namespace)
	case config.DriverRedis:
		return storage.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.Namespace)
	default:
		return storage.OpenSQLite(ctx, cfg.Path, cfg.Namespace)
	}
}

// newAssistant returns the Claude assistant when an API key is configured.
// Without one every AI feature degrades to its local fallback.
func newAssistant(cfg config.AIConfig, logger *slog.Logger) planner.Assistant {
	if !cfg.Enabled() {
		logger.Info("assistant disabled: no API key configured")
		return planner.Unavailable{}
	}
	claude, err := planner.NewClaudeAssistant(planner.ClaudeConfig{
		APIKey:    cfg.APIKey,
		Models:    cfg.Models,
		MaxTokens: cfg.MaxTokens,
		Timeout:   cfg.Timeout,
	}, logger)
	if err != nil {
		logger.Warn("assistant disabled", slog.String("error", err.Error()))
		return planner.Unavailable{}
	}
	return claude
}
