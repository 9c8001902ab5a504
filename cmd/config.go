package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytpl/internal/shared"
	"github.com/desertthunder/ytpl/internal/ui"
	"github.com/urfave/cli/v3"
)

// configView is the printable form of [shared.Config] with the API key masked.
type configView struct {
	APIKey    string `json:"apiKey"`
	BaseURL   string `json:"baseUrl"`
	Addr      string `json:"addr"`
	StaticDir string `json:"staticDir"`
	PageSize  int    `json:"pageSize"`
	MaxPages  int    `json:"maxPages"`
	LogLevel  string `json:"logLevel"`
}

// ConfigInit writes the embedded example config to --path, or to --config when unset.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if path == "" {
		path = cmd.String("config")
	}
	if path == "" {
		return fmt.Errorf("%w: --path", shared.ErrMissingArgument)
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	return r.writePlain("%s\n", ui.RenderHint("Set YOUTUBE_API_KEY in .env.local or edit "+path+" to add your API key."))
}

// ConfigShow prints the effective configuration after file and environment resolution.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	view := configView{
		APIKey:    shared.MaskSecret(config.Credentials.YouTube.APIKey),
		BaseURL:   config.Credentials.YouTube.BaseURL,
		Addr:      config.Server.Addr(),
		StaticDir: config.Server.StaticDir,
		PageSize:  config.Playlist.PageSize,
		MaxPages:  config.Playlist.MaxPages,
		LogLevel:  config.Log.Level,
	}

	if cmd.Bool("json") {
		return r.writeJSON(view, true)
	}

	apiKey := view.APIKey
	if apiKey == "" {
		apiKey = "(not set)"
	}

	fields := []ui.Field{
		{Label: "API key", Value: apiKey},
		{Label: "Base URL", Value: view.BaseURL},
		{Label: "Listen", Value: view.Addr},
		{Label: "Static dir", Value: view.StaticDir},
		{Label: "Page size", Value: fmt.Sprint(view.PageSize)},
		{Label: "Max pages", Value: fmt.Sprint(view.MaxPages)},
		{Label: "Log level", Value: view.LogLevel},
	}
	return r.writePlain("%s\n", ui.RenderFields("Configuration", fields))
}
