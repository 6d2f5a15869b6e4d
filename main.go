package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spotdemo4/matrix-terminal/internal/tui"
)

var version = "dev"

func main() {
	if err := start(); err != nil {
		tui.PrintErr("error: %v", err)
		os.Exit(1)
	}
}

// start owns every resource main sets up, so they are released before the process exits.
func start() error {
	c, err := getConfig()
	if err != nil {
		return err
	}

	// Debug logging goes to a file, the terminal belongs to the UI
	if c.DebugLog != "" {
		f, err := tea.LogToFile(c.DebugLog, "matrix-terminal")
		if err != nil {
			return fmt.Errorf("could not open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, c); err != nil {
		return err
	}

	if c.DebugLog != "" {
		tui.Print("debug log written to %s", c.DebugLog)
	}

	return nil
}

func run(ctx context.Context, c config) error {
	model := tui.New(c.options(version))
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion())

	final, err := p.Run()
	if m, ok := final.(tui.Tui); ok {
		m.Close()
	} else {
		model.Close()
	}

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, tea.ErrInterrupted) {
		return err
	}

	return nil
}
