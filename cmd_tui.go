package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"podcastpulse/config"
	"podcastpulse/logger"
	"podcastpulse/tui"
	"podcastpulse/viewer"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the terminal UI",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The UI owns the screen, so logs only go to a file
	logFile := cfg.Log.File
	if logFile == "" {
		logFile = config.TUILogFile
	}
	if err := logger.Init(cfg.Log.Level, logFile, true); err != nil {
		return err
	}
	defer logger.Close()

	api := newClient(cfg)
	defer api.Close()
	logger.Log.WithField("endpoint", api.Endpoint()).Info("starting terminal UI")

	m := tui.NewModel(api, viewer.NoopFeedback{}, viewerOptions(cfg)...)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
