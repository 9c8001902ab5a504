package server

import "net/http"

// StaticHandler serves a directory of files verbatim.
type StaticHandler struct {
	files http.Handler
}

// NewStaticHandler creates a [StaticHandler] rooted at dir.
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{files: http.FileServer(http.Dir(dir))}
}

// Routes returns the HTTP routes this handler serves.
func (h *StaticHandler) Routes() []string {
	return []string{"/"}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.files.ServeHTTP(w, r)
}
