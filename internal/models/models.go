// package models defines the data model for the playlist export service
package models

import (
	"time"
)

// TimestampLayout matches the millisecond precision ISO-8601 form used for fetchedAt.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// VideoRecord is one video in a playlist.
type VideoRecord struct {
	VideoID         string `json:"videoId"`
	Title           string `json:"title"`
	Thumbnail       string `json:"thumbnail"`
	ThumbnailMedium string `json:"thumbnailMedium"`
	ThumbnailHigh   string `json:"thumbnailHigh"`
	Description     string `json:"description"`
	PublishedAt     string `json:"publishedAt"`
}

// WatchURL returns the youtube.com watch link for the record.
func (v VideoRecord) WatchURL() string {
	if v.VideoID == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + v.VideoID
}

// AggregationResult is the document returned for a playlist.
//
// Truncated is only encoded when the page cap stopped the fetch early.
type AggregationResult struct {
	PlaylistID  string        `json:"playlistId"`
	TotalVideos int           `json:"totalVideos"`
	FetchedAt   string        `json:"fetchedAt"`
	Videos      []VideoRecord `json:"videos"`
	Truncated   bool          `json:"truncated,omitempty"`
}

// NewAggregationResult stamps the accumulated videos with their count and the completion time.
func NewAggregationResult(playlistID string, videos []VideoRecord, truncated bool, fetchedAt time.Time) *AggregationResult {
	if videos == nil {
		videos = []VideoRecord{}
	}
	return &AggregationResult{
		PlaylistID:  playlistID,
		TotalVideos: len(videos),
		FetchedAt:   fetchedAt.UTC().Format(TimestampLayout),
		Videos:      videos,
		Truncated:   truncated,
	}
}
