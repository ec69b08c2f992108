// Package site serves the landing page that links to the API docs and the
// most used reports.
package site

import (
	"context"
	"net/http"
)

// Register attaches the landing page at exactly "/". Other unmatched paths
// fall through to the mux's 404.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /{$}", HandleRoot)
}

// HandleRoot serves the embedded index page.
func HandleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}
