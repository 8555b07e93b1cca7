// ABOUTME: Entry point for the engine sound simulator
// ABOUTME: Loads configuration, sets up logging and runs the application
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Resonate-Protocol/enginesound-go/internal/app"
	"github.com/Resonate-Protocol/enginesound-go/internal/config"
	"github.com/Resonate-Protocol/enginesound-go/internal/logging"
	"github.com/Resonate-Protocol/enginesound-go/internal/version"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

// defaultTUILogFile keeps log lines from tearing the terminal UI
const defaultTUILogFile = "enginesound.log"

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if cfg.ShowVersion {
		fmt.Println(version.String())
		return 0
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	fd := os.Stdin.Fd()
	interactive := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	logFile := cfg.LogFile
	if logFile == "" && interactive && !cfg.NoKeyboard {
		logFile = defaultTUILogFile
	}
	f, err := logging.Configure(cfg.LogLevel, logFile, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if f != nil {
		defer func() { _ = f.Close() }()
	}

	slog.Info("starting",
		"version", version.Version,
		"backend", cfg.Backend,
		"headless", cfg.Headless,
		"interactive", interactive)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg, app.Options{
		In:          os.Stdin,
		Out:         os.Stdout,
		Interactive: interactive,
	})

	if err := a.Run(ctx); err != nil {
		slog.Error("engine stopped", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	slog.Info("stopped")
	return 0
}
