package api

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"podcastpulse/client"
	"podcastpulse/config"
	"podcastpulse/logger"
	"podcastpulse/session"
	"podcastpulse/viewer"
)

// HealthChecker is implemented by clients that can probe the summarization API
type HealthChecker interface {
	Health(ctx context.Context) (bool, error)
}

// Deps are the collaborators the web front end needs
type Deps struct {
	Summarizer client.Summarizer
	Health     HealthChecker
	History    client.HistoryLister
	Store      session.Store
	Feedback   viewer.FeedbackHandler
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Feedback == nil {
		deps.Feedback = viewer.NoopFeedback{}
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.SetHTMLTemplate(template.Must(template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")))

	// Register resource routers
	RegisterPageRoutes(r, &PageController{deps: deps})
	RegisterHealthRoutes(r, deps.Health)
	return r
}

// Serve runs handler on addr until ctx is cancelled, then shuts down gracefully
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Log.Infof("Starting web server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Log.Info("Shutting down web server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
