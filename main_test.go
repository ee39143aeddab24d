package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podcastpulse/viewer"
)

func TestPrintViewListsEverySection(t *testing.T) {
	var buf bytes.Buffer
	printView(&buf, viewer.View{
		Title:     "Episode 7",
		VideoID:   "abc",
		Sections:  viewer.Render(viewer.New()).Sections,
		Topics:    []viewer.TopicView{{Name: "Focus", Quotes: "a | b"}},
		Resources: []string{"Book"},
	})

	out := buf.String()
	assert.Contains(t, out, "Episode 7\nvideo: abc\n")
	assert.Contains(t, out, "Topics\n  - Focus\n    a | b\n")
	assert.Contains(t, out, "Resources\n  - Book\n")
	assert.Contains(t, out, "Key Questions\n  (none)\n")
}

func TestSummarizeCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"message":"ok","video_id":"v1","summary":{"title":"Pulse","key_questions":["How?"]}}`)
	}))
	defer srv.Close()

	t.Setenv("PP_API_ENDPOINT", srv.URL+"/download")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"summarize", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "https://youtu.be/v1"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(os.Stdout) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Pulse\nvideo: v1\n")
	assert.Contains(t, out.String(), "  - How?")
}

func TestSummarizeCommandReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"Video unavailable"}`)
	}))
	defer srv.Close()

	t.Setenv("PP_API_ENDPOINT", srv.URL+"/download")
	rootCmd.SetArgs([]string{"summarize", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "https://youtu.be/v1"})
	rootCmd.SetErr(io.Discard)
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetErr(os.Stderr) })

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Equal(t, "Video unavailable", err.Error())
}
