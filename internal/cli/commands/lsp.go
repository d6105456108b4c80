package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prithivirajmurugan/rs-compiler/internal/lsp"
	"github.com/spf13/cobra"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the language server",
		Long: `Start a Language Server Protocol server on stdin and stdout.

The server publishes syntax and type errors as diagnostics, shows the type
of the expression under the cursor on hover, formats whole documents and
completes keywords, type names and known names. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), lsp.Config{
				Engine:          cmdCtx.Engine,
				Env:             cmdCtx.Env,
				Version:         version,
				MaxMessageBytes: cmdCtx.Cfg.Serve.MaxBodyBytes,
				Logger:          cmdCtx.Logger.With("component", "lsp"),
			})
			return server.Run(ctx)
		},
	}
}
