// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/desertthunder/ytpl/internal/models"
)

// MockFetcher is a test double for [services.PlaylistFetcher]
type MockFetcher struct {
	Result *models.AggregationResult
	Err    error

	mu    sync.Mutex
	calls []string
}

func (m *MockFetcher) FetchPlaylist(ctx context.Context, playlistID string) (*models.AggregationResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, playlistID)
	m.mu.Unlock()
	return m.Result, m.Err
}

// Calls returns the playlist IDs requested so far.
func (m *MockFetcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// PanicFetcher panics on every call.
type PanicFetcher struct{}

func (PanicFetcher) FetchPlaylist(context.Context, string) (*models.AggregationResult, error) {
	panic("fetcher exploded")
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// CountingRoundTripper counts requests before delegating to Next, or failing when Next is nil.
type CountingRoundTripper struct {
	Next  http.RoundTripper
	count atomic.Int64
}

func (c *CountingRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	c.count.Add(1)
	if c.Next == nil {
		return nil, errors.New("unexpected request to " + r.URL.Host)
	}
	return c.Next.RoundTrip(r)
}

// Count returns the number of requests seen.
func (c *CountingRoundTripper) Count() int {
	return int(c.count.Load())
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// Item builds a playlistItems entry with every snippet field populated.
func Item(videoID, title string) map[string]any {
	return map[string]any{
		"id": "item-" + videoID,
		"snippet": map[string]any{
			"publishedAt": "2024-01-02T03:04:05Z",
			"title":       title,
			"description": "about " + title,
			"thumbnails": map[string]any{
				"default": map[string]any{"url": "https://i.ytimg.com/vi/" + videoID + "/default.jpg", "width": 120, "height": 90},
				"medium":  map[string]any{"url": "https://i.ytimg.com/vi/" + videoID + "/mqdefault.jpg", "width": 320, "height": 180},
				"high":    map[string]any{"url": "https://i.ytimg.com/vi/" + videoID + "/hqdefault.jpg", "width": 480, "height": 360},
			},
			"resourceId": map[string]any{"kind": "youtube#video", "videoId": videoID},
		},
	}
}

// PagedUpstream is an [http.Handler] imitating the playlistItems endpoint.
//
// Page n is served for pageToken "page-n" (no token means page 1). When Endless is set
// every page advertises a next page.
type PagedUpstream struct {
	Pages   [][]map[string]any
	Endless bool
	// FailOn makes the given 1-based page answer with FailStatus and FailBody.
	FailOn     int
	FailStatus int
	FailBody   string

	mu       sync.Mutex
	requests []*http.Request
}

func (p *PagedUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	p.requests = append(p.requests, r.Clone(context.Background()))
	p.mu.Unlock()

	page := 1
	if token := r.URL.Query().Get("pageToken"); token != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(token, "page-"))
		if err != nil {
			http.Error(w, "bad token", http.StatusBadRequest)
			return
		}
		page = n
	}

	if p.FailOn == page {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(p.FailStatus)
		fmt.Fprint(w, p.FailBody)
		return
	}

	total := 0
	for _, items := range p.Pages {
		total += len(items)
	}
	body := map[string]any{
		"kind":     "youtube#playlistItemListResponse",
		"pageInfo": map[string]any{"totalResults": total, "resultsPerPage": 50},
	}
	if page <= len(p.Pages) {
		body["items"] = p.Pages[page-1]
	}
	if p.Endless || page < len(p.Pages) {
		body["nextPageToken"] = fmt.Sprintf("page-%d", page+1)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

// Requests returns copies of the requests served so far.
func (p *PagedUpstream) Requests() []*http.Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*http.Request(nil), p.requests...)
}

// UniformPages builds n pages of size items with video IDs "v<page>-<index>".
func UniformPages(n, size int) [][]map[string]any {
	pages := make([][]map[string]any, n)
	for i := range pages {
		for j := 0; j < size; j++ {
			id := fmt.Sprintf("v%d-%d", i+1, j+1)
			pages[i] = append(pages[i], Item(id, "Video "+id))
		}
	}
	return pages
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustDecodeJSON(t *testing.T, data []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("Failed to decode JSON %s: %v", string(data), err)
	}
}
