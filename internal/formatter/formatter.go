// package formatter provides functions to export playlist data to various formats (JSON, CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/ytpl/internal/models"
	"github.com/desertthunder/ytpl/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
)

// Formats lists the supported formats in help order.
var Formats = []Format{FormatJSON, FormatCSV, FormatMarkdown, FormatText}

// ParseFormat accepts a format name or one of its common aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, name)
	}
}

// Filename returns the default file name for a result, playlist_{id}.{ext}
func Filename(result *models.AggregationResult, format Format) string {
	return fmt.Sprintf("playlist_%s.%s", result.PlaylistID, format)
}

// Export renders result in the given format. Pretty only affects JSON.
func Export(result *models.AggregationResult, format Format, pretty bool) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ExportToJSON(result, pretty)
	case FormatCSV:
		return ExportToCSV(result)
	case FormatMarkdown:
		return ExportToMarkdown(result)
	case FormatText:
		return ExportToText(result)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// ExportToJSON encodes the result exactly as the HTTP endpoint does, optionally indented.
func ExportToJSON(result *models.AggregationResult, pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportToCSV converts an AggregationResult to CSV format with columns: videoId, title, publishedAt, thumbnail, url
func ExportToCSV(result *models.AggregationResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"videoId", "title", "publishedAt", "thumbnail", "url"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, video := range result.Videos {
		record := []string{
			video.VideoID,
			video.Title,
			video.PublishedAt,
			video.Thumbnail,
			video.WatchURL(),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts an AggregationResult to a Markdown list of linked titles
func ExportToMarkdown(result *models.AggregationResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Playlist %s\n\n", result.PlaylistID))
	buf.WriteString(fmt.Sprintf("**Videos**: %d\n", result.TotalVideos))
	buf.WriteString(fmt.Sprintf("**Fetched**: %s\n", result.FetchedAt))
	if result.Truncated {
		buf.WriteString("**Note**: the playlist was longer than the page limit; this list is incomplete.\n")
	}
	buf.WriteString("\n## Videos\n\n")

	for i, video := range result.Videos {
		title := escapeMarkdown(video.Title)
		if url := video.WatchURL(); url != "" {
			title = fmt.Sprintf("[%s](%s)", title, url)
		}
		if video.PublishedAt != "" {
			buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, title, video.PublishedAt))
		} else {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, title))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts an AggregationResult to plain text format
func ExportToText(result *models.AggregationResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", result.PlaylistID))
	buf.WriteString(fmt.Sprintf("Videos: %d\n", result.TotalVideos))
	if result.Truncated {
		buf.WriteString("Truncated: yes\n")
	}
	buf.WriteString("\n")

	for i, video := range result.Videos {
		buf.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, video.Title, video.VideoID))
	}

	return buf.Bytes(), nil
}

// WriteExport renders result and writes it to path.
//
// Defaults to [Filename] in the working directory.
func WriteExport(result *models.AggregationResult, format Format, pretty bool, path string) (string, error) {
	if path == "" {
		path = Filename(result, format)
	}

	data, err := Export(result, format, pretty)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

var markdownEscaper = strings.NewReplacer(`\`, `\\`, "[", `\[`, "]", `\]`, "*", `\*`, "_", `\_`, "`", "\\`")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
