package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/desertthunder/ytpl/internal/shared"
)

// ExtractPlaylistID returns the playlist ID referenced by input.
//
// Input that parses as an absolute URL must carry a non-empty list query parameter.
// Any other input is treated as a bare ID and returned trimmed.
func ExtractPlaylistID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", shared.ErrMissingInput
	}

	u, err := url.Parse(input)
	if err != nil || u.Scheme == "" {
		return input, nil
	}

	id := u.Query().Get("list")
	if id == "" {
		return "", fmt.Errorf("%w: no list parameter in %q", shared.ErrInvalidPlaylistReference, input)
	}
	return id, nil
}
