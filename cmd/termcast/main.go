// Command termcast renders the world in a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"gridcaster/internal/config"
	"gridcaster/internal/engine"
	"gridcaster/internal/terminal"

	"github.com/gdamore/tcell/v2"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config")
	logPath := flag.String("log", "", "write log output to this file instead of discarding it")
	flag.Parse()

	if err := run(*configPath, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "termcast: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	// The screen owns stdout; logging there would corrupt the frame.
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log %s: %w", logPath, err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	e, err := engine.New(cfg)
	if err != nil {
		return err
	}
	defer e.Close()
	e.InitAudio()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = terminal.NewRunner(screen, e, cfg.Terminal.FPS).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
