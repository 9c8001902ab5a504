package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig     = fmt.Errorf("invalid configuration")
	ErrMissingCredential = fmt.Errorf("missing credential")

	// API and service errors
	ErrAPIRequest = fmt.Errorf("API request failed")

	// Input validation errors
	ErrMissingInput             = fmt.Errorf("missing input")
	ErrInvalidPlaylistReference = fmt.Errorf("invalid playlist reference")
	ErrMissingArgument          = fmt.Errorf("missing required argument")
	ErrInvalidArgument          = fmt.Errorf("invalid argument")
)
