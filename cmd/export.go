package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/ytpl/internal/formatter"
	"github.com/desertthunder/ytpl/internal/services"
	"github.com/desertthunder/ytpl/internal/shared"
	"github.com/desertthunder/ytpl/internal/ui"
	"github.com/urfave/cli/v3"
)

// Export fetches a playlist and writes it in the requested format.
//
// With --output - the document goes to stdout and no summary is printed.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	input := cmd.StringArg("playlist")
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("%w: playlist URL or ID", shared.ErrMissingArgument)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	playlistID, err := services.ExtractPlaylistID(input)
	if err != nil {
		return fmt.Errorf("%w: %s", err, input)
	}

	if _, err := r.loadConfig(cmd); err != nil {
		return err
	}

	result, err := r.playlistFetcher().FetchPlaylist(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("failed to fetch playlist: %w", err)
	}

	pretty := cmd.Bool("pretty")
	output := cmd.String("output")

	if output == "-" {
		data, err := formatter.Export(result, format, pretty)
		if err != nil {
			return err
		}
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	path, err := formatter.WriteExport(result, format, pretty, output)
	if err != nil {
		return err
	}

	r.logger.Debug("export written", "path", path, "format", format, "videos", result.TotalVideos)
	return r.writePlain("%s\n", ui.RenderSummary(result, path))
}
