package ui

import (
	"fmt"
	"strings"

	"github.com/desertthunder/ytpl/internal/models"
)

const (
	labelWidth   = 12
	previewLimit = 5
)

// Field is a labelled line in a rendered block.
type Field struct {
	Label string
	Value string
}

// RenderFields renders a title followed by aligned label/value lines.
func RenderFields(title string, fields []Field) string {
	var b strings.Builder
	b.WriteString(styles.title.Render(title))
	for _, f := range fields {
		b.WriteString("\n")
		b.WriteString(styles.label.Render(f.Label + ":"))
		b.WriteString(f.Value)
	}
	return b.String()
}

// RenderSummary describes an export: where it went, how many videos, and the first few titles.
//
// An empty dest means the export went to stdout.
func RenderSummary(result *models.AggregationResult, dest string) string {
	if dest == "" {
		dest = "stdout"
	}

	fields := []Field{
		{Label: "Playlist", Value: result.PlaylistID},
		{Label: "Videos", Value: fmt.Sprint(result.TotalVideos)},
		{Label: "Fetched", Value: result.FetchedAt},
		{Label: "Output", Value: dest},
	}

	var b strings.Builder
	b.WriteString(RenderFields(styles.ok.Render("✓ Export Complete"), fields))

	if result.Truncated {
		b.WriteString("\n\n")
		b.WriteString(styles.warn.Render("Playlist exceeded the page limit; the export is incomplete."))
	}

	if len(result.Videos) > 0 {
		b.WriteString("\n\n")
		for i, video := range result.Videos {
			if i == previewLimit {
				b.WriteString(styles.help.Render(fmt.Sprintf("  … and %d more", len(result.Videos)-previewLimit)))
				b.WriteString("\n")
				break
			}
			title := video.Title
			if title == "" {
				title = "(untitled)"
			}
			b.WriteString(fmt.Sprintf("  • %s\n", title))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// RenderError styles an error for stderr.
func RenderError(err error) string {
	return styles.err.Render(fmt.Sprintf("Error: %v", err))
}

// RenderHint styles secondary help text.
func RenderHint(s string) string {
	return styles.help.Render(s)
}
