package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytpl/internal/services"
	"github.com/desertthunder/ytpl/internal/shared"
	"github.com/desertthunder/ytpl/internal/ui"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	fetcher    services.PlaylistFetcher
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	verbose    bool
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A nil Config is resolved from --config and the environment on first use; a nil
// Fetcher is built from that config.
type RunnerOpts struct {
	Config     *shared.Config
	Fetcher    services.PlaylistFetcher
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		fetcher:    opts.Fetcher,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, exportCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig resolves the configuration once and applies its log level unless --verbose
// was given.
func (r *Runner) loadConfig(cmd *cli.Command) (*shared.Config, error) {
	if r.config == nil {
		config, err := shared.ResolveConfig(cmd.String("config"))
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		r.config = config
	}

	if !r.verbose {
		shared.SetLogLevel(r.logger, shared.ParseLevel(r.config.Log.Level))
	}
	return r.config, nil
}

func (r *Runner) playlistFetcher() services.PlaylistFetcher {
	if r.fetcher == nil {
		yt := r.config.Credentials.YouTube
		r.fetcher = services.NewYouTubeService(services.YouTubeConfig{
			APIKey:   yt.APIKey,
			BaseURL:  yt.BaseURL,
			PageSize: r.config.Playlist.PageSize,
			MaxPages: r.config.Playlist.MaxPages,
		}, r.httpClient, r.logger)
	}
	return r.fetcher
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// reportError prints a failed command's error to w and returns the exit status.
func reportError(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintln(w, ui.RenderError(err))
	return 1
}
