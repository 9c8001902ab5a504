// YouTube Data API v3 [PlaylistFetcher] implementation
//
// Pages through the playlistItems endpoint with an API key.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytpl/internal/models"
	"github.com/desertthunder/ytpl/internal/shared"
)

const (
	defaultYTBaseURL string = "https://www.googleapis.com/youtube/v3"

	// DefaultPageSize is the largest page the playlistItems endpoint serves.
	DefaultPageSize int = 50
	// DefaultMaxPages caps page requests per playlist.
	DefaultMaxPages int = 20
)

// YouTubeConfig holds everything [YouTubeService] needs to reach the API.
type YouTubeConfig struct {
	APIKey   string
	BaseURL  string
	PageSize int
	MaxPages int
}

// Thumbnail is a single thumbnail rendition.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Thumbnails holds the renditions keyed by resolution. Any of them may be absent.
type Thumbnails struct {
	Default  *Thumbnail `json:"default"`
	Medium   *Thumbnail `json:"medium"`
	High     *Thumbnail `json:"high"`
	Standard *Thumbnail `json:"standard"`
	Maxres   *Thumbnail `json:"maxres"`
}

// ResourceID identifies the video a playlist item points at.
type ResourceID struct {
	Kind    string `json:"kind"`
	VideoID string `json:"videoId"`
}

// PlaylistItemSnippet is the metadata of a playlist item.
//
// Deleted and private videos come back with fields missing, so everything is optional.
type PlaylistItemSnippet struct {
	PublishedAt  *string     `json:"publishedAt"`
	ChannelID    *string     `json:"channelId"`
	Title        *string     `json:"title"`
	Description  *string     `json:"description"`
	Thumbnails   *Thumbnails `json:"thumbnails"`
	ChannelTitle *string     `json:"channelTitle"`
	PlaylistID   *string     `json:"playlistId"`
	Position     *int        `json:"position"`
	ResourceID   *ResourceID `json:"resourceId"`
}

// PlaylistItem is one entry of a playlistItems page.
type PlaylistItem struct {
	ID      string               `json:"id"`
	Snippet *PlaylistItemSnippet `json:"snippet"`
}

// PageInfo carries the totals reported alongside a page.
type PageInfo struct {
	TotalResults   int `json:"totalResults"`
	ResultsPerPage int `json:"resultsPerPage"`
}

// PlaylistItemsPage is a single playlistItems response.
//
// PageInfo is decoded for callers of [YouTubeService.FetchPage]; aggregation only follows
// NextPageToken.
type PlaylistItemsPage struct {
	NextPageToken string         `json:"nextPageToken"`
	Items         []PlaylistItem `json:"items"`
	PageInfo      *PageInfo      `json:"pageInfo"`
}

// UpstreamError is returned when the API answers with a non-2xx status.
type UpstreamError struct {
	StatusCode int
	Message    string
	Reason     string // first errors[].reason, e.g. quotaExceeded
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("youtube API error (status %d): %s", e.StatusCode, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return shared.ErrAPIRequest
}

// TransportError is returned when no usable response was received.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	return "request failed: " + e.Message
}

func (e *TransportError) Unwrap() []error {
	return []error{shared.ErrAPIRequest, e.Err}
}

// YouTubeService implements [PlaylistFetcher] against the YouTube Data API.
//
// It holds no per-request state and is safe for concurrent use.
type YouTubeService struct {
	config     YouTubeConfig
	httpClient *http.Client
	logger     *log.Logger
	now        func() time.Time
}

// NewYouTubeService creates a new YouTube Data API service instance.
//
// Zero values in cfg are replaced with the package defaults.
func NewYouTubeService(cfg YouTubeConfig, client *http.Client, logger *log.Logger) *YouTubeService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultYTBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &YouTubeService{
		config:     cfg,
		httpClient: client,
		logger:     logger,
		now:        time.Now,
	}
}

// FetchPage requests a single playlistItems page. An empty pageToken requests the first page.
func (y *YouTubeService) FetchPage(ctx context.Context, playlistID, pageToken string) (*PlaylistItemsPage, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("playlistId", playlistID)
	params.Set("maxResults", strconv.Itoa(y.config.PageSize))
	params.Set("key", y.config.APIKey)
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	apiURL := y.config.BaseURL + "/playlistItems?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, &TransportError{Message: fmt.Sprintf("failed to create request: %v", err), Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Message: transportMessage(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, upstreamError(resp)
	}

	var page PlaylistItemsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, &TransportError{Message: fmt.Sprintf("failed to decode response: %v", err), Err: err}
	}

	return &page, nil
}

// FetchPlaylist retrieves every item of a playlist and maps it to [models.VideoRecord].
//
// Pages are requested strictly one after another. The loop ends when the API stops
// returning a nextPageToken or after MaxPages requests, in which case the result is
// marked truncated.
func (y *YouTubeService) FetchPlaylist(ctx context.Context, playlistID string) (*models.AggregationResult, error) {
	if y.config.APIKey == "" {
		return nil, fmt.Errorf("%w: YouTube API key not configured", shared.ErrMissingCredential)
	}

	logger := shared.WithLogger(y.logger, "playlist", playlistID)
	logger.Info("fetching playlist")

	var (
		videos    []models.VideoRecord
		pageToken string
		requests  int
		truncated bool
	)

	for {
		requests++
		if requests > y.config.MaxPages {
			logger.Warn("max pagination requests reached", "max_pages", y.config.MaxPages, "videos", len(videos))
			truncated = true
			break
		}

		page, err := y.FetchPage(ctx, playlistID, pageToken)
		if err != nil {
			logger.Error("error fetching playlist", "page", requests, "error", err)
			return nil, err
		}

		for _, item := range page.Items {
			videos = append(videos, mapVideoRecord(item))
		}
		logger.Debug("fetched page", "page", requests, "items", len(page.Items), "total", len(videos))

		if pageToken = page.NextPageToken; pageToken == "" {
			break
		}
	}

	logger.Info("fetched playlist", "videos", len(videos), "truncated", truncated)
	return models.NewAggregationResult(playlistID, videos, truncated, y.now()), nil
}

func mapVideoRecord(item PlaylistItem) models.VideoRecord {
	s := item.Snippet
	if s == nil {
		s = &PlaylistItemSnippet{}
	}

	record := models.VideoRecord{
		Title:       deref(s.Title),
		Description: deref(s.Description),
		PublishedAt: deref(s.PublishedAt),
	}

	if s.ResourceID != nil {
		record.VideoID = s.ResourceID.VideoID
	}

	if s.Thumbnails != nil {
		record.Thumbnail = thumbnailURL(s.Thumbnails.Default)
		record.ThumbnailMedium = thumbnailURL(s.Thumbnails.Medium)
		record.ThumbnailHigh = thumbnailURL(s.Thumbnails.High)
	}

	return record
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func thumbnailURL(t *Thumbnail) string {
	if t == nil {
		return ""
	}
	return t.URL
}

// upstreamError builds an [UpstreamError] from an error response, preferring the
// message in the API's error envelope.
func upstreamError(resp *http.Response) *UpstreamError {
	e := &UpstreamError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("request failed with status code %d", resp.StatusCode),
	}

	var envelope struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Errors  []struct {
				Reason string `json:"reason"`
			} `json:"errors"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return e
	}

	if envelope.Error.Message != "" {
		e.Message = envelope.Error.Message
	}
	if len(envelope.Error.Errors) > 0 {
		e.Reason = envelope.Error.Errors[0].Reason
	}
	return e
}

// transportMessage strips the request URL from client errors so the API key never
// ends up in a message.
func transportMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err.Error()
	}
	return err.Error()
}
