package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/rocket/internal/config"
	"github.com/tomz197/rocket/internal/hud"
	"github.com/tomz197/rocket/internal/input"
	"github.com/tomz197/rocket/internal/logging"
	"github.com/tomz197/rocket/internal/loop"
	"golang.org/x/term"
)

func main() {
	logger := logging.New(os.Stderr, "rocket")
	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("ignoring .env", "err", err)
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		logger.Fatal("stdin is not a terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	// Raw mode swallows the terminal's own line handling, so the logger
	// stays quiet while the flight owns the screen.
	runErr := loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		HUDInterval: config.GetEnvDuration("HUD_INTERVAL", hud.DefaultInterval),
		KeyHold: input.Hold{
			Initial: config.GetEnvDuration("KEY_INITIAL_HOLD", input.DefaultHold.Initial),
			Repeat:  config.GetEnvDuration("KEY_REPEAT_HOLD", input.DefaultHold.Repeat),
		},
	})

	_ = term.Restore(fd, oldState)
	if runErr != nil {
		logger.Error("flight error", "err", runErr)
		os.Exit(1)
	}
}
