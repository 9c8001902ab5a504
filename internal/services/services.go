// package services defines the upstream API clients used by the exporter
//
// YouTube Data API v3
package services

import (
	"context"

	"github.com/desertthunder/ytpl/internal/models"
)

// PlaylistFetcher aggregates every video of a playlist into a single result.
type PlaylistFetcher interface {
	// FetchPlaylist pages through the playlist and returns all of its videos.
	// Either a complete (possibly cap-truncated) result or an error is returned, never both.
	FetchPlaylist(ctx context.Context, playlistID string) (*models.AggregationResult, error)
}
