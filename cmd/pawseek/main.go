package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/ugaemi/pawseek/internal/audio"
	"github.com/ugaemi/pawseek/internal/config"
	"github.com/ugaemi/pawseek/internal/terminal"
)

func main() {
	cfg := config.Load()

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	setupLogger(cfg, logFile)

	settings, err := cfg.Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	player := audio.NewCuePlayer(cfg.AssetDir, cfg.Mute)
	if err := player.Start(); err != nil {
		// The game is playable without sound.
		slog.Warn("audio disabled", "error", err)
	}
	defer player.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	g, err := terminal.NewGame(screen, terminal.Options{
		Scene:      settings.Scene,
		Difficulty: settings.Difficulty,
		Pool:       settings.Pool,
		Rand:       cfg.Rand(),
		Sound:      player,
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "failed to start game: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("game starting", "scene", settings.Scene.String(), "difficulty", settings.Difficulty.String(), "animals", cfg.Animals)
	g.Run(ctx)
	slog.Info("game stopped")
}

func setupLogger(cfg *config.Config, w io.Writer) {
	var h slog.Handler
	opts := &slog.HandlerOptions{}

	switch cfg.LogLevel {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	switch cfg.LogFormat {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(h))
}
