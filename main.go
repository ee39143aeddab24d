package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"podcastpulse/client"
	"podcastpulse/config"
	"podcastpulse/viewer"
)

var (
	configPath string
	logLevel   string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "podcastpulse",
	Short: "Podcast Pulse - summarize a video podcast by URL",
	Long: `Podcast Pulse sends a video URL to the summarization API and shows the
summary: title, topics with quotes and advice, resources and key questions.

Run without arguments to start the terminal UI.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(summarizeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads --config and applies --log-level
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

// viewerOptions maps config onto state machine options
func viewerOptions(cfg *config.Config) []viewer.Option {
	return []viewer.Option{viewer.WithSequencing(cfg.Viewer.SequenceRequests)}
}

func newClient(cfg *config.Config) *client.SummarizerClient {
	return client.NewSummarizerClient(cfg.API)
}
