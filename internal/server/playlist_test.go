package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/desertthunder/ytpl/internal/models"
	"github.com/desertthunder/ytpl/internal/services"
	"github.com/desertthunder/ytpl/internal/shared"
	tu "github.com/desertthunder/ytpl/internal/testing"
)

func get(t *testing.T, h http.Handler, playlistURL string, set bool) *httptest.ResponseRecorder {
	t.Helper()
	target := PlaylistRoute
	if set {
		target += "?" + url.Values{PlaylistParam: {playlistURL}}.Encode()
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestPlaylistHandler(t *testing.T) {
	logger := shared.NewLogger(io.Discard)

	t.Run("Routes", func(t *testing.T) {
		h := NewPlaylistHandler(&tu.MockFetcher{}, logger)
		if routes := h.Routes(); len(routes) != 1 || routes[0] != "/api/playlist-json" {
			t.Errorf("unexpected routes %v", routes)
		}
	})

	t.Run("success sets download headers", func(t *testing.T) {
		fetcher := &tu.MockFetcher{Result: &models.AggregationResult{
			PlaylistID:  "PL123",
			TotalVideos: 1,
			FetchedAt:   "2026-10-17T12:00:00.000Z",
			Videos:      []models.VideoRecord{{VideoID: "abc", Title: "First"}},
		}}
		h := NewPlaylistHandler(fetcher, logger)

		rec := get(t, h, "https://www.youtube.com/playlist?list=PL123", true)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %s", ct)
		}
		if cd := rec.Header().Get("Content-Disposition"); cd != "attachment; filename=playlist_PL123.json" {
			t.Errorf("unexpected Content-Disposition %s", cd)
		}

		var body models.AggregationResult
		tu.MustDecodeJSON(t, rec.Body.Bytes(), &body)
		if body.PlaylistID != "PL123" || body.TotalVideos != 1 || body.Videos[0].VideoID != "abc" {
			t.Errorf("unexpected body %+v", body)
		}

		if calls := fetcher.Calls(); len(calls) != 1 || calls[0] != "PL123" {
			t.Errorf("expected one fetch for PL123, got %v", calls)
		}
	})

	t.Run("bare id is passed through", func(t *testing.T) {
		fetcher := &tu.MockFetcher{Result: models.NewAggregationResult("PLbare", nil, false, fixedTime)}
		rec := get(t, NewPlaylistHandler(fetcher, logger), " PLbare ", true)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if calls := fetcher.Calls(); len(calls) != 1 || calls[0] != "PLbare" {
			t.Errorf("expected trimmed id, got %v", calls)
		}
	})

	t.Run("missing parameter", func(t *testing.T) {
		fetcher := &tu.MockFetcher{}
		rec := get(t, NewPlaylistHandler(fetcher, logger), "", false)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}

		var body map[string]any
		tu.MustDecodeJSON(t, rec.Body.Bytes(), &body)
		if body["error"] != "playlistUrl query parameter is required" {
			t.Errorf("unexpected error %v", body["error"])
		}
		if body["example"] != "/api/playlist-json?playlistUrl=https://www.youtube.com/playlist?list=PLxxxxxx" {
			t.Errorf("unexpected example %v", body["example"])
		}
		if len(fetcher.Calls()) != 0 {
			t.Error("expected no fetch")
		}
	})

	t.Run("url without list parameter", func(t *testing.T) {
		fetcher := &tu.MockFetcher{}
		rec := get(t, NewPlaylistHandler(fetcher, logger), "https://www.youtube.com/watch?v=abc", true)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}

		var body map[string]any
		tu.MustDecodeJSON(t, rec.Body.Bytes(), &body)
		if body["error"] != "Invalid playlist URL or ID" {
			t.Errorf("unexpected error %v", body["error"])
		}
		if _, ok := body["example"]; ok {
			t.Error("expected no example field")
		}
		if len(fetcher.Calls()) != 0 {
			t.Error("expected no fetch")
		}
	})

	t.Run("error mapping", func(t *testing.T) {
		tc := []struct {
			name       string
			err        error
			wantStatus int
			wantBody   map[string]any
		}{
			{
				name:       "missing credential",
				err:        shared.ErrMissingCredential,
				wantStatus: http.StatusInternalServerError,
				wantBody:   map[string]any{"error": "YouTube API key not configured. Please add YOUTUBE_API_KEY in .env.local file"},
			},
			{
				name:       "upstream forbidden",
				err:        &services.UpstreamError{StatusCode: http.StatusForbidden, Message: "quota exceeded"},
				wantStatus: http.StatusForbidden,
				wantBody:   map[string]any{"error": "YouTube API error", "message": "quota exceeded", "statusCode": float64(403)},
			},
			{
				name:       "upstream not found",
				err:        &services.UpstreamError{StatusCode: http.StatusNotFound, Message: "playlist not found"},
				wantStatus: http.StatusNotFound,
				wantBody:   map[string]any{"error": "YouTube API error", "message": "playlist not found", "statusCode": float64(404)},
			},
			{
				name:       "transport failure",
				err:        &services.TransportError{Message: "connection refused", Err: errors.New("connection refused")},
				wantStatus: http.StatusInternalServerError,
				wantBody:   map[string]any{"error": "Failed to fetch playlist", "message": "connection refused"},
			},
			{
				name:       "unclassified failure",
				err:        errors.New("boom"),
				wantStatus: http.StatusInternalServerError,
				wantBody:   map[string]any{"error": "Failed to fetch playlist", "message": "boom"},
			},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				rec := get(t, NewPlaylistHandler(&tu.MockFetcher{Err: tt.err}, logger), "PL123", true)

				if rec.Code != tt.wantStatus {
					t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
				}
				if rec.Header().Get("Content-Disposition") != "" {
					t.Error("expected no download header on error")
				}

				var body map[string]any
				tu.MustDecodeJSON(t, rec.Body.Bytes(), &body)
				if len(body) != len(tt.wantBody) {
					t.Errorf("expected body %v, got %v", tt.wantBody, body)
				}
				for k, want := range tt.wantBody {
					if body[k] != want {
						t.Errorf("%s: expected %v, got %v", k, want, body[k])
					}
				}
			})
		}
	})

	t.Run("client disconnect does not cancel the fetch", func(t *testing.T) {
		var seen context.Context
		fetcher := fetcherFunc(func(ctx context.Context, id string) (*models.AggregationResult, error) {
			seen = ctx
			return models.NewAggregationResult(id, nil, false, fixedTime), nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		req := httptest.NewRequest(http.MethodGet, PlaylistRoute+"?playlistUrl=PL1", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		NewPlaylistHandler(fetcher, logger).ServeHTTP(rec, req)

		if seen == nil || seen.Err() != nil {
			t.Errorf("expected a live context, got %v", seen)
		}
	})
}

func TestPlaylistEndpoint(t *testing.T) {
	logger := shared.NewLogger(io.Discard)

	t.Run("aggregates a paged upstream", func(t *testing.T) {
		upstream := httptest.NewServer(&tu.PagedUpstream{Pages: tu.UniformPages(3, 2)})
		defer upstream.Close()

		svc := services.NewYouTubeService(services.YouTubeConfig{APIKey: "k", BaseURL: upstream.URL}, nil, logger)
		rec := get(t, NewAppRouter(svc, "", logger), "https://www.youtube.com/playlist?list=PL6", true)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var body models.AggregationResult
		tu.MustDecodeJSON(t, rec.Body.Bytes(), &body)
		if body.TotalVideos != 6 || len(body.Videos) != 6 {
			t.Fatalf("expected 6 videos, got %d", body.TotalVideos)
		}
		if body.Videos[0].VideoID != "v1-1" || body.Videos[5].VideoID != "v3-2" {
			t.Errorf("unexpected order: first %s last %s", body.Videos[0].VideoID, body.Videos[5].VideoID)
		}
	})

	t.Run("upstream 403 on page two", func(t *testing.T) {
		upstream := httptest.NewServer(&tu.PagedUpstream{
			Pages:      tu.UniformPages(3, 2),
			FailOn:     2,
			FailStatus: http.StatusForbidden,
			FailBody:   `{"error":{"code":403,"message":"The caller does not have permission"}}`,
		})
		defer upstream.Close()

		svc := services.NewYouTubeService(services.YouTubeConfig{APIKey: "k", BaseURL: upstream.URL}, nil, logger)
		rec := get(t, NewAppRouter(svc, "", logger), "PL6", true)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}

		var body map[string]any
		tu.MustDecodeJSON(t, rec.Body.Bytes(), &body)
		if body["error"] != "YouTube API error" || body["message"] != "The caller does not have permission" || body["statusCode"] != float64(403) {
			t.Errorf("unexpected body %v", body)
		}
		if _, ok := body["videos"]; ok {
			t.Error("expected no partial videos")
		}
	})

	t.Run("HEAD is rejected without fetching", func(t *testing.T) {
		upstream := &tu.PagedUpstream{Pages: tu.UniformPages(3, 2)}
		server := httptest.NewServer(upstream)
		defer server.Close()

		svc := services.NewYouTubeService(services.YouTubeConfig{APIKey: "k", BaseURL: server.URL}, nil, logger)
		rec := httptest.NewRecorder()
		NewAppRouter(svc, "", logger).ServeHTTP(rec, httptest.NewRequest(http.MethodHead, PlaylistRoute+"?playlistUrl=PL1", nil))

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
		if n := len(upstream.Requests()); n != 0 {
			t.Errorf("expected no upstream requests, got %d", n)
		}
	})

	t.Run("missing credential makes no upstream request", func(t *testing.T) {
		rt := &tu.CountingRoundTripper{}
		svc := services.NewYouTubeService(services.YouTubeConfig{}, &http.Client{Transport: rt}, logger)
		rec := get(t, NewAppRouter(svc, "", logger), "PL6", true)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if rt.Count() != 0 {
			t.Errorf("expected no upstream requests, got %d", rt.Count())
		}
	})
}

type failingWriter struct {
	*httptest.ResponseRecorder
}

func (f failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestPlaylistHandlerLogging(t *testing.T) {
	t.Run("upstream reason is logged", func(t *testing.T) {
		var buf bytes.Buffer
		err := &services.UpstreamError{StatusCode: http.StatusForbidden, Message: "quota", Reason: "quotaExceeded"}
		get(t, NewPlaylistHandler(&tu.MockFetcher{Err: err}, shared.NewLogger(&buf)), "PL1", true)

		if out := buf.String(); !strings.Contains(out, "reason=quotaExceeded") || !strings.Contains(out, "status=403") {
			t.Errorf("expected status and reason in log, got %s", out)
		}
	})

	t.Run("failed body write is logged", func(t *testing.T) {
		var buf bytes.Buffer
		fetcher := &tu.MockFetcher{Result: models.NewAggregationResult("PL1", []models.VideoRecord{{VideoID: "a"}}, false, fixedTime)}
		h := NewPlaylistHandler(fetcher, shared.NewLogger(&buf))

		w := failingWriter{httptest.NewRecorder()}
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, PlaylistRoute+"?playlistUrl=PL1", nil))

		out := buf.String()
		if !strings.Contains(out, "failed to write response") || !strings.Contains(out, "connection reset") {
			t.Errorf("expected write failure in log, got %s", out)
		}
	})
}

type fetcherFunc func(ctx context.Context, id string) (*models.AggregationResult, error)

func (f fetcherFunc) FetchPlaylist(ctx context.Context, id string) (*models.AggregationResult, error) {
	return f(ctx, id)
}
