package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/cowork/internal/shared"
	"github.com/desertthunder/cowork/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive seat reservation client.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	alerts := ui.NewAlerts()
	ctl, err := r.controller(ctx, alerts)
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, ctl, alerts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
