package api

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"podcastpulse/client"
	"podcastpulse/config"
	"podcastpulse/logger"
	"podcastpulse/types"
	"podcastpulse/viewer"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

// PageController serves the viewer page and its form actions
type PageController struct {
	deps Deps
}

// RegisterPageRoutes registers the page and its form actions.
func RegisterPageRoutes(r *gin.Engine, pc *PageController) {
	g := r.Group("/", sessionMiddleware())
	g.GET("/", pc.handlePage)
	g.POST("/submit", pc.handleSubmit)
	g.POST("/sections/:section/toggle", pc.handleToggle)
	g.POST("/feedback", pc.handleFeedback)

	a := r.Group("/api", sessionMiddleware())
	a.GET("/state", pc.handleState)
	a.POST("/submit", pc.handleSubmitJSON)
	a.POST("/sections/:section/toggle", pc.handleToggleJSON)
	a.GET("/history", pc.handleHistory)
}

// SubmitRequest is the JSON body of POST /api/submit
type SubmitRequest struct {
	YouTubeURL string `json:"youtube_url"`
}

// PageData feeds templates/index.html
type PageData struct {
	View    viewer.View
	History []types.HistoryEntry
	// Refresh is the meta refresh interval in seconds, 0 for none
	Refresh int
}

// handlePage renders the viewer for the caller's session
func (pc *PageController) handlePage(c *gin.Context) {
	st, err := pc.deps.Store.Load(c.Request.Context(), c.GetString(sessionKey))
	if err != nil {
		pc.storeError(c, err)
		return
	}
	pc.render(c, viewer.Render(st))
}

func (pc *PageController) render(c *gin.Context, v viewer.View) {
	data := PageData{View: v}
	if v.ShowLoading {
		data.Refresh = config.PageRefreshSeconds
	} else {
		data.History = pc.recentHistory(c.Request.Context())
	}
	c.HTML(http.StatusOK, "index.html", data)
}

// recentHistory is best effort: the page renders without it when the API
// cannot list its history
func (pc *PageController) recentHistory(ctx context.Context) []types.HistoryEntry {
	if pc.deps.History == nil {
		return nil
	}
	entries, err := pc.deps.History.History(ctx)
	if err != nil {
		logger.Log.Debugf("history unavailable: %v", err)
		return nil
	}
	if len(entries) > config.HistoryLimit {
		entries = entries[:config.HistoryLimit]
	}
	return entries
}

// handleSubmit starts the submit operation for the form's youtube_url and
// redirects straight away, so the page shows the loading indicator while the
// request runs. Each submit runs on its own; with overlapping submits on one
// session the last response to arrive wins unless the session is sequenced.
func (pc *PageController) handleSubmit(c *gin.Context) {
	id := c.GetString(sessionKey)
	url := c.PostForm("youtube_url")
	// The request to the API is not cancelled if the browser goes away.
	ctx := context.WithoutCancel(c.Request.Context())

	seq, send, err := pc.begin(ctx, id, url)
	if err != nil {
		pc.storeError(c, err)
		return
	}
	if send {
		go func() {
			if _, err := pc.fetch(ctx, id, seq, url); err != nil {
				logger.Log.WithField("session", id).Errorf("failed to store summary outcome: %v", err)
			}
		}()
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// handleSubmitJSON is handleSubmit for scripted clients. It waits for the
// outcome and answers with the rendered view.
func (pc *PageController) handleSubmitJSON(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.GetString(sessionKey)
	ctx := context.WithoutCancel(c.Request.Context())
	seq, send, err := pc.begin(ctx, id, req.YouTubeURL)
	if err != nil {
		pc.storeError(c, err)
		return
	}

	var st viewer.State
	if send {
		st, err = pc.fetch(ctx, id, seq, req.YouTubeURL)
	} else {
		st, err = pc.deps.Store.Load(ctx, id)
	}
	if err != nil {
		pc.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewer.Render(st))
}

// begin validates url and marks the session loading. It reports whether a
// request must be sent and the sequence number it carries.
func (pc *PageController) begin(ctx context.Context, id, url string) (uint64, bool, error) {
	var (
		seq  uint64
		send bool
	)
	_, err := pc.deps.Store.Update(ctx, id, func(s viewer.State) viewer.State {
		var next viewer.State
		next, seq, send = viewer.Begin(s, url)
		return next
	})
	return seq, send && err == nil, err
}

// fetch sends the one request for seq and stores its outcome. When the
// outcome cannot be stored, a failure carrying the store error is written
// instead so the session never stays loading.
func (pc *PageController) fetch(ctx context.Context, id string, seq uint64, url string) (viewer.State, error) {
	logger.Log.WithFields(logrus.Fields{"session": id, "seq": seq}).Info("submitting")
	outcome := viewer.Fetch(ctx, pc.deps.Summarizer, seq, url)

	st, err := pc.deps.Store.Update(ctx, id, func(s viewer.State) viewer.State {
		return viewer.Reduce(s, outcome)
	})
	if err == nil {
		return st, nil
	}

	logger.Log.WithFields(logrus.Fields{"session": id, "seq": seq}).Warnf("failed to store outcome, recording failure: %v", err)
	failed := viewer.SummaryFailed{Seq: seq, Err: &client.TransportError{Op: "failed to save summary", Err: err}}
	return pc.deps.Store.Update(ctx, id, func(s viewer.State) viewer.State {
		return viewer.Reduce(s, failed)
	})
}

// handleToggle flips one section
func (pc *PageController) handleToggle(c *gin.Context) {
	if _, ok := pc.toggle(c); ok {
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// handleToggleJSON flips one section and answers with the rendered view
func (pc *PageController) handleToggleJSON(c *gin.Context) {
	if st, ok := pc.toggle(c); ok {
		c.JSON(http.StatusOK, viewer.Render(st))
	}
}

func (pc *PageController) toggle(c *gin.Context) (viewer.State, bool) {
	sec, ok := viewer.ParseSection(c.Param("section"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown section " + c.Param("section")})
		return viewer.State{}, false
	}
	st, err := pc.deps.Store.Update(c.Request.Context(), c.GetString(sessionKey), func(s viewer.State) viewer.State {
		return viewer.Reduce(s, viewer.SectionToggled{Section: sec})
	})
	if err != nil {
		pc.storeError(c, err)
		return viewer.State{}, false
	}
	return st, true
}

// handleFeedback runs the feedback handler, which does nothing, and renders
// the page with the draft echoed back. The draft only lives in the form.
func (pc *PageController) handleFeedback(c *gin.Context) {
	text := c.PostForm("feedback")
	st, err := pc.deps.Store.Load(c.Request.Context(), c.GetString(sessionKey))
	if err != nil {
		pc.storeError(c, err)
		return
	}
	if err := pc.deps.Feedback.SubmitFeedback(c.Request.Context(), text); err != nil {
		logger.Log.Warnf("feedback handler failed: %v", err)
	}

	v := viewer.Render(viewer.Reduce(st, viewer.FeedbackChanged{Text: text}))
	pc.render(c, v)
}

// handleState returns the rendered view as JSON
func (pc *PageController) handleState(c *gin.Context) {
	st, err := pc.deps.Store.Load(c.Request.Context(), c.GetString(sessionKey))
	if err != nil {
		pc.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewer.Render(st))
}

// handleHistory proxies the API's history, newest first
func (pc *PageController) handleHistory(c *gin.Context) {
	if pc.deps.History == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history is not available"})
		return
	}
	entries, err := pc.deps.History.History(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": client.UserMessage(err)})
		return
	}
	c.JSON(http.StatusOK, types.HistoryResponse{History: entries})
}

func (pc *PageController) storeError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "session store unavailable"})
}
