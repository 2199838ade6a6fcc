package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"shiftlog/internal/config"
	"shiftlog/internal/kv"
	"shiftlog/internal/tracker"
)

type app struct {
	cfg     *config.Config
	cfgPath string
	repo    *kv.Repository
	tracker *tracker.Tracker
	logger  *log.Logger
	logFile *os.File
}

// openApp loads config, sets up logging and opens the store. With toFile
// set, logs go to the configured log file instead of stderr.
func openApp(configPath string, toFile bool) (*app, error) {
	manager, err := config.NewManager(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := manager.GetConfig()

	a := &app{cfg: cfg, cfgPath: manager.Path()}

	out, logFile, err := logOutput(cfg.Log.File, toFile)
	if err != nil {
		return nil, err
	}
	a.logFile = logFile
	a.logger = newLogger(out, cfg.Log.Level)

	repo, err := kv.NewRepository(cfg.Database.Path)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.repo = repo
	a.tracker = tracker.New(repo, a.logger)
	a.logger.Debug("opened store", "db", cfg.Database.Path, "records", a.tracker.Records.Len())

	return a, nil
}

// logOutput picks where logs go. The TUI never logs to the terminal.
func logOutput(path string, toFile bool) (io.Writer, *os.File, error) {
	if !toFile {
		return os.Stderr, nil, nil
	}
	if path == "" {
		return io.Discard, nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, f, nil
}

func newLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "shiftlog",
		ReportTimestamp: true,
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

func (a *app) Close() error {
	var err error
	if a.repo != nil {
		err = a.repo.Close()
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return err
}
