package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"teamforge/cmd/teamforge/shell"
	"teamforge/internal/api"
	"teamforge/internal/config"
	"teamforge/internal/logging"
)

// runInteractive starts the full-screen interface. Requests made by the
// interface are cancelled when it exits.
func runInteractive(cmd *cobra.Command) error {
	logs, err := logging.Open(config.DirName, cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to open logs: %w", err)
	}
	defer logs.Close()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	root, cancel := context.WithCancel(parent)
	defer cancel()

	client := api.NewClient(cfg, logs.Get(logging.CategoryAPI))
	model := shell.NewModel(shell.NewContext(root, client, cfg, logs))

	opts := []tea.ProgramOption{tea.WithContext(root)}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	logs.Get(logging.CategoryBoot).Info("interactive session started", zap.String("base_url", cfg.API.BaseURL))
	_, err = tea.NewProgram(model, opts...).Run()
	if err != nil && root.Err() != nil {
		// Interrupted from outside; not a failure.
		return nil
	}
	return err
}
