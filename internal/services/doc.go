// Package services implements the YouTube Data API client behind the playlist exporter.
//
// # Playlist References
//
// [ExtractPlaylistID] turns caller input into a playlist ID. Absolute URLs must carry a
// list query parameter; anything that is not an absolute URL is taken as the ID itself.
//
// # Aggregation
//
// [YouTubeService] implements [PlaylistFetcher]. [YouTubeService.FetchPlaylist] requests
// playlistItems pages one after another, following nextPageToken until it is empty or
// MaxPages requests have been made. Reaching the cap is not an error: the result is
// returned with Truncated set and a warning is logged.
//
// # Error Handling
//
// Failures abort the whole aggregation; no partial result is returned.
//   - [shared.ErrMissingCredential] : no API key configured, returned before any request
//   - [UpstreamError] : the API answered with a non-2xx status
//   - [TransportError] : no usable response was received
//
// Both typed errors match [shared.ErrAPIRequest] with errors.Is.
package services
