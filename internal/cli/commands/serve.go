package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prithivirajmurugan/rs-compiler/internal/server"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Addr string // Overrides serve.addr from the configuration
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the formatting playground server",
		Long: `Start an HTTP server that formats and type-checks source sent to it.

Endpoints:
  GET  /             Playground page
  POST /api/format   Formatted document (HTML, or plain text with Accept: text/plain)
  POST /api/types    Expression types and diagnostics as JSON
  GET  /healthz      Liveness probe

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Example: `  # Start on the configured address
  rsc serve

  # Start on a different port
  rsc serve --addr :9000

  # Format through the API
  curl -s -H 'Accept: text/plain' --data-binary @main.rsc localhost:8420/api/format`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "Listen address (default from serve.addr)")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	addr := cmdCtx.Cfg.Serve.Addr
	if opts.Addr != "" {
		addr = opts.Addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(server.Config{
		Engine:          cmdCtx.Engine,
		Env:             cmdCtx.Env,
		Addr:            addr,
		ShutdownTimeout: cmdCtx.Cfg.Serve.ShutdownTimeout,
		MaxBodyBytes:    cmdCtx.Cfg.Serve.MaxBodyBytes,
		Logger:          cmdCtx.Logger,
	})

	r := cmdCtx.Renderer
	r.Printf("%s %s\n", r.Styles().Header.Render("rsc playground"), r.Styles().Bold.Render("http://"+addr))
	r.Println(r.Styles().Muted.Render("press Ctrl+C to stop"))

	return srv.Serve(ctx)
}
