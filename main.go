package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	app "github.com/rocketscienceinc/tictactoe3d/internal"
	"github.com/rocketscienceinc/tictactoe3d/internal/config"
)

const (
	exitRuntime = 1
	exitConfig  = 2
)

// main - loads the configuration, plays one game and exits.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(exitRuntime)
		}
	}()

	conf, err := initConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(exitConfig)
	}

	logger := initLogger(conf)

	if err = app.RunApp(logger, conf); err != nil {
		logger.Error("app run failed", "error", err)
		os.Exit(exitRuntime)
	}
}

// initialize config.
func initConfig() (*config.Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		baseDir, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}

		path = filepath.Join(baseDir, "config.yml")
	}

	return config.Load(path)
}

// initialize logger. Logs go to stderr, stdout belongs to the game.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
