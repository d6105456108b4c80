// Package commands implements the rsc subcommands.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/prithivirajmurugan/rs-compiler/internal/cli/config"
	"github.com/prithivirajmurugan/rs-compiler/internal/cli/output"
	"github.com/prithivirajmurugan/rs-compiler/internal/engine"
	"github.com/prithivirajmurugan/rs-compiler/pkg/resolve"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
	Env      resolve.Env
}

// NewCommandContext builds the engine and renderer from the configuration
// stored in the command context.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	palette, err := cfg.FormatPalette()
	if err != nil {
		return nil, fmt.Errorf("invalid palette: %w", err)
	}
	env, err := cfg.Bindings()
	if err != nil {
		return nil, fmt.Errorf("invalid globals: %w", err)
	}

	eng := engine.New(engine.Config{
		IndentWidth: cfg.IndentWidth,
		Palette:     palette,
		Logger:      logger,
	})

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))
	r.SetPalette(palette)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   eng,
		Renderer: r,
		Env:      env,
	}, nil
}
