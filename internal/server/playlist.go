package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytpl/internal/services"
	"github.com/desertthunder/ytpl/internal/shared"
)

const (
	// PlaylistRoute is the path of the export endpoint.
	PlaylistRoute = "/api/playlist-json"
	// PlaylistParam is the query parameter holding the playlist URL or ID.
	PlaylistParam = "playlistUrl"

	usageExample = PlaylistRoute + "?" + PlaylistParam + "=https://www.youtube.com/playlist?list=PLxxxxxx"
)

// Error bodies, kept verbatim for clients matching on them.
const (
	msgMissingInput      = "playlistUrl query parameter is required"
	msgInvalidReference  = "Invalid playlist URL or ID"
	msgMissingCredential = "YouTube API key not configured. Please add YOUTUBE_API_KEY in .env.local file"
	msgUpstream          = "YouTube API error"
	msgFetchFailed       = "Failed to fetch playlist"
)

type errorResponse struct {
	Error      string `json:"error"`
	Example    string `json:"example,omitempty"`
	Message    string `json:"message,omitempty"`
	StatusCode int    `json:"statusCode,omitempty"`
}

// PlaylistHandler exports a playlist as a downloadable JSON document.
type PlaylistHandler struct {
	fetcher services.PlaylistFetcher
	logger  *log.Logger
}

// NewPlaylistHandler creates a [PlaylistHandler] backed by fetcher.
func NewPlaylistHandler(fetcher services.PlaylistFetcher, logger *log.Logger) *PlaylistHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &PlaylistHandler{fetcher: fetcher, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *PlaylistHandler) Routes() []string {
	return []string{PlaylistRoute}
}

// ServeHTTP handles GET /api/playlist-json?playlistUrl=...
func (h *PlaylistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := shared.WithLogger(h.logger, "request_id", RequestIDFrom(r.Context()))

	playlistID, err := services.ExtractPlaylistID(r.URL.Query().Get(PlaylistParam))
	switch {
	case errors.Is(err, shared.ErrMissingInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgMissingInput, Example: usageExample})
		return
	case err != nil:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidReference})
		return
	}

	// The fetch runs to completion even if the client goes away.
	result, err := h.fetcher.FetchPlaylist(context.WithoutCancel(r.Context()), playlistID)
	if err != nil {
		h.logFetchError(logger, playlistID, err)
		h.writeFetchError(w, err)
		return
	}

	logger.Info("exported playlist", "playlist", playlistID, "videos", result.TotalVideos, "truncated", result.Truncated)

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=playlist_%s.json", playlistID))
	if err := writeJSON(w, http.StatusOK, result); err != nil {
		logger.Warn("failed to write response", "playlist", playlistID, "videos", result.TotalVideos, "error", err)
	}
}

func (h *PlaylistHandler) logFetchError(logger *log.Logger, playlistID string, err error) {
	var upstream *services.UpstreamError
	if errors.As(err, &upstream) {
		logger.Error("error fetching playlist", "playlist", playlistID, "status", upstream.StatusCode, "reason", upstream.Reason, "error", err)
		return
	}
	logger.Error("error fetching playlist", "playlist", playlistID, "error", err)
}

func (h *PlaylistHandler) writeFetchError(w http.ResponseWriter, err error) {
	var upstream *services.UpstreamError
	switch {
	case errors.Is(err, shared.ErrMissingCredential):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgMissingCredential})
	case errors.As(err, &upstream):
		writeJSON(w, upstream.StatusCode, errorResponse{
			Error:      msgUpstream,
			Message:    upstream.Message,
			StatusCode: upstream.StatusCode,
		})
	default:
		var transport *services.TransportError
		message := err.Error()
		if errors.As(err, &transport) {
			message = transport.Message
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgFetchFailed, Message: message})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
