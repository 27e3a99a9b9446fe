package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rahulvramesh/cleanmac/internal/access"
	"github.com/rahulvramesh/cleanmac/internal/config"
	"github.com/rahulvramesh/cleanmac/internal/logging"
	"github.com/rahulvramesh/cleanmac/internal/ui"
)

// tuiCmd creates the tui command
func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd)
		},
	}
}

func runTUI(cmd *cobra.Command) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	// Log to a file; the program owns the terminal
	logger, err := logging.NewFile(cfg.LogFile, verbose || cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	e, err := newEnv(cmd, logger)
	if err != nil {
		return err
	}
	defer e.close()

	model := ui.InitialModel(cmd.Context(), ui.Options{
		Home:   e.cfg.Home,
		Apps:   e.appSession(),
		Junk:   e.junkSession(),
		Prober: access.NewFileProbe(e.cfg.Home),
		Logger: logger.Named("ui"),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
