package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"podcastpulse/api"
	"podcastpulse/config"
	"podcastpulse/logger"
	"podcastpulse/session"
	"podcastpulse/viewer"
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the browser UI",
	Long: `Serve the browser UI and its JSON routes:

  GET  /                          summary viewer page
  POST /submit                    submit a URL (form field youtube_url)
  POST /sections/:section/toggle  collapse or expand a section
  POST /feedback                  feedback form (not wired to anything)
  GET  /api/state                 the session's rendered view
  POST /api/submit                submit a URL as JSON
  GET  /api/health                liveness plus summarization API probe`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func runWeb(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.File, false); err != nil {
		return err
	}
	defer logger.Close()

	opts := viewerOptions(cfg)
	store, err := session.NewFromConfig(cfg.Session, func() viewer.State { return viewer.New(opts...) })
	if err != nil {
		return err
	}
	defer store.Close()

	apiClient := newClient(cfg)
	defer apiClient.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	router := api.NewRouter(api.Deps{
		Summarizer: apiClient,
		Health:     apiClient,
		History:    apiClient,
		Store:      store,
		Feedback:   viewer.NoopFeedback{},
	})

	g, ctx := errgroup.WithContext(ctx)
	if mem, ok := store.(*session.MemoryStore); ok {
		g.Go(func() error { return mem.Janitor(ctx, config.SweepInterval) })
	}
	g.Go(func() error { return api.Serve(ctx, cfg.Web.ListenAddr, router) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Log.Info("web server stopped")
	return nil
}
