package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"podcastpulse/logger"
	"podcastpulse/viewer"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <url>",
	Short: "Summarize one URL and print the result",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// stdout carries the summary, logs go to the file if any
	if err := logger.Init(cfg.Log.Level, cfg.Log.File, true); err != nil {
		return err
	}
	defer logger.Close()

	api := newClient(cfg)
	defer api.Close()

	v := viewer.NewViewer(api, nil, viewerOptions(cfg)...)
	view := viewer.Render(v.Submit(cmd.Context(), args[0]))
	if view.Error != "" {
		return errors.New(view.Error)
	}
	printView(cmd.OutOrStdout(), view)
	return nil
}

// printView writes a loaded view as plain text
func printView(w io.Writer, v viewer.View) {
	fmt.Fprintln(w, v.Title)
	if v.VideoID != "" {
		fmt.Fprintf(w, "video: %s\n", v.VideoID)
	}
	if v.Message != "" {
		fmt.Fprintf(w, "status: %s\n", v.Message)
	}

	for _, sec := range v.Sections {
		fmt.Fprintf(w, "\n%s\n", sec.Label)
		var lines []string
		switch sec.ID {
		case viewer.SectionTopics:
			for _, t := range v.Topics {
				line := t.Name
				if t.Quotes != "" {
					line += "\n    " + t.Quotes
				}
				lines = append(lines, line)
			}
		case viewer.SectionResources:
			lines = v.Resources
		case viewer.SectionKeyQuestions:
			lines = v.KeyQuestions
		}
		if len(lines) == 0 {
			fmt.Fprintln(w, "  (none)")
			continue
		}
		fmt.Fprintln(w, "  - "+strings.Join(lines, "\n  - "))
	}
}
