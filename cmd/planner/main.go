package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"planner/internal/adapters/editor"
	"planner/internal/adapters/tui"
	"planner/internal/bootstrap"
	"planner/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal, so logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := bootstrap.NewLogger(cfg, logOut)

	w, err := bootstrap.Open(cfg, logger, bootstrap.OpenOptions{})
	if err != nil {
		return err
	}
	defer w.Close()

	app, err := tui.NewApp(w, editor.NewOpener())
	if err != nil {
		return err
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
