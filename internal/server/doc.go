// Package server provides HTTP routing, middleware, and handlers for the playlist export service.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order so the first one added is the outermost.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Middleware
//
//   - [RequestID] : assigns a uuid to every request (X-Request-ID)
//   - [Logging] : one log line per request with status and duration
//   - [Recover] : converts handler panics into a JSON 500
//
// # Playlist Handler
//
// [PlaylistHandler] serves GET /api/playlist-json. It normalizes the playlistUrl query
// parameter, aggregates the playlist and answers with the document as a file download.
// The aggregation is detached from the request context, so a client disconnect does not
// abort a fetch that is already running.
//
// Error responses:
//
//	400 missing playlistUrl          {error, example}
//	400 no playlist ID in input      {error}
//	500 API key not configured       {error}
//	xxx upstream API error           {error, message, statusCode} with the upstream status
//	500 transport failure            {error, message}
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
// [StaticHandler] uses it to serve the public directory at "/".
package server
