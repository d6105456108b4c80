package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/prithivirajmurugan/rs-compiler/internal/engine"
	"github.com/prithivirajmurugan/rs-compiler/internal/state"
	"github.com/prithivirajmurugan/rs-compiler/internal/watch"
	"github.com/spf13/cobra"
)

// ErrNotFormatted is returned by fmt --check when a file would change.
var ErrNotFormatted = errors.New("some files are not formatted")

// FmtOptions holds options for the fmt command.
type FmtOptions struct {
	Write   bool // Write results back to the files
	Check   bool // Only report files that would change
	Watch   bool // Re-format files when they change
	NoCache bool // Ignore the format cache
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand() *cobra.Command {
	opts := &FmtOptions{}
	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Format source files",
		Long: `Format source files in the canonical layout.

Each path may be a file or a directory; directories are searched for *.rsc
files. With no paths, source is read from stdin and written to stdout.

Regions that do not parse are echoed as they were written and the syntax
errors are reported on stderr. Files with syntax errors are never rewritten.

When cache.path is configured, --check and --write remember which files
were already formatted and skip them on later runs until their content or
the indent width changes.`,
		Example: `  # Print the formatted file
  rsc fmt main.rsc

  # Rewrite every file under src/
  rsc fmt -w src

  # Fail when anything is not formatted (CI)
  rsc fmt --check src

  # Keep files formatted while editing
  rsc fmt --watch src`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write result to the source files")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "List files whose formatting differs and exit non-zero")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-format files whenever they change (implies --write)")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Ignore the format cache")
	cmd.MarkFlagsMutuallyExclusive("check", "watch")

	return cmd
}

func runFmt(cmd *cobra.Command, args []string, opts *FmtOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		if opts.Watch || opts.Write {
			return fmt.Errorf("--write and --watch need file arguments")
		}
		return fmtStdin(cmd, cmdCtx, opts)
	}

	files, err := engine.Discover(args)
	if err != nil {
		return err
	}
	if opts.Watch {
		return watchFiles(cmd, cmdCtx, args)
	}

	sources, err := engine.ReadSources(files)
	if err != nil {
		return err
	}

	var cache *state.Store
	if (opts.Check || opts.Write) && !opts.NoCache && cmdCtx.Cfg.Cache.Path != "" {
		cache, err = state.Open(cmd.Context(), cmdCtx.Cfg.Cache.Path, cmdCtx.Logger)
		if err != nil {
			return err
		}
		defer func() { _ = cache.Close() }()

		sources, err = skipCached(cmd.Context(), cmdCtx, cache, sources)
		if err != nil {
			return err
		}
	}

	outputs, err := cmdCtx.Engine.FormatAll(cmd.Context(), sources)
	if err != nil {
		return err
	}
	reportErr := reportOutputs(cmdCtx, outputs, opts)
	if cache != nil {
		if err := recordFormatted(cmd.Context(), cmdCtx, cache, outputs, opts); err != nil {
			return err
		}
	}
	return reportErr
}

// cacheKey names a file in the format cache independently of the working
// directory.
func cacheKey(name string) string {
	if abs, err := filepath.Abs(name); err == nil {
		return abs
	}
	return filepath.Clean(name)
}

// skipCached drops sources the cache knows are already formatted.
func skipCached(ctx context.Context, cmdCtx *CommandContext, cache *state.Store, sources []engine.Source) ([]engine.Source, error) {
	indent := cmdCtx.Engine.IndentWidth()
	kept := make([]engine.Source, 0, len(sources))
	for _, src := range sources {
		ok, err := cache.IsFormatted(ctx, cacheKey(src.Name), engine.HashContent([]byte(src.Text)), indent)
		if err != nil {
			return nil, err
		}
		if ok {
			cmdCtx.Logger.Debug("cache hit", "file", src.Name)
			continue
		}
		kept = append(kept, src)
	}
	cmdCtx.Logger.Debug("format cache", "skipped", len(sources)-len(kept), "remaining", len(kept))
	return kept, nil
}

// recordFormatted stores every output whose file is now in canonical form:
// files that did not change, and in write mode the files just rewritten.
func recordFormatted(ctx context.Context, cmdCtx *CommandContext, cache *state.Store, outputs []engine.Output, opts *FmtOptions) error {
	indent := cmdCtx.Engine.IndentWidth()
	for _, out := range outputs {
		if out.Err != nil || out.Doc == nil {
			continue
		}
		content := out.Source
		if out.Changed() {
			if !opts.Write {
				continue
			}
			content = out.Doc.String()
		}
		if err := cache.MarkFormatted(ctx, cacheKey(out.Name), engine.HashContent([]byte(content)), indent); err != nil {
			return err
		}
	}
	return nil
}

func fmtStdin(cmd *cobra.Command, cmdCtx *CommandContext, opts *FmtOptions) error {
	src, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	outputs, err := cmdCtx.Engine.FormatAll(cmd.Context(), []engine.Source{{Name: "<stdin>", Text: string(src)}})
	if err != nil {
		return err
	}
	return reportOutputs(cmdCtx, outputs, opts)
}

// reportOutputs prints, checks or writes the outputs in input order.
func reportOutputs(cmdCtx *CommandContext, outputs []engine.Output, opts *FmtOptions) error {
	r := cmdCtx.Renderer
	syntaxErrors := 0
	unformatted := 0

	for _, out := range outputs {
		if out.Err != nil {
			syntaxErrors++
			r.Error(out.Err.Error())
		}

		switch {
		case opts.Check:
			if out.Changed() {
				unformatted++
				r.Println(out.Name)
			}
		case opts.Write:
			if out.Err != nil || !out.Changed() {
				continue
			}
			if err := os.WriteFile(out.Name, []byte(out.Doc.String()), 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", out.Name, err)
			}
			cmdCtx.Logger.Info("formatted", "file", out.Name)
			r.Println(r.Styles().Success.Render("formatted ") + out.Name)
		default:
			if len(outputs) > 1 {
				r.Println(r.Styles().File.Render(out.Name))
			}
			if err := r.Document(out.Doc); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}

	if syntaxErrors > 0 {
		return fmt.Errorf("%d file(s) with syntax errors", syntaxErrors)
	}
	if unformatted > 0 {
		return fmt.Errorf("%w: %d file(s)", ErrNotFormatted, unformatted)
	}
	return nil
}

// watchFiles formats every file once, then again each time it changes,
// until interrupted.
func watchFiles(cmd *cobra.Command, cmdCtx *CommandContext, paths []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	files, err := engine.Discover(paths)
	if err != nil {
		return err
	}
	for _, f := range files {
		formatFile(ctx, cmdCtx, f)
	}

	explicit := make(map[string]bool, len(files))
	for _, f := range files {
		explicit[filepath.Clean(f)] = true
	}

	w := watch.New(watch.Config{
		Paths: paths,
		Match: func(p string) bool {
			return strings.HasSuffix(p, engine.SourceExt) || explicit[filepath.Clean(p)]
		},
		Debounce: cmdCtx.Cfg.Watch.Debounce,
		Logger:   cmdCtx.Logger,
	})

	cmdCtx.Renderer.Println(cmdCtx.Renderer.Styles().Muted.Render("watching for changes, press Ctrl+C to stop"))
	return w.Run(ctx, func(path string) {
		formatFile(ctx, cmdCtx, path)
	})
}

// formatFile rewrites path if its content changed since it was last seen.
// The formatted content is recorded too, so our own write is not reported
// as a change.
func formatFile(ctx context.Context, cmdCtx *CommandContext, path string) {
	content, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the watched set
	if err != nil {
		cmdCtx.Renderer.Error(err.Error())
		return
	}
	if !cmdCtx.Engine.Changed(path, content) || ctx.Err() != nil {
		return
	}

	doc, err := cmdCtx.Engine.Format(path, string(content))
	if err != nil {
		cmdCtx.Renderer.Error(err.Error())
		return
	}
	if doc.String() == string(content) {
		return
	}

	formatted := []byte(doc.String())
	cmdCtx.Engine.Changed(path, formatted)
	if err := os.WriteFile(path, formatted, 0o600); err != nil {
		cmdCtx.Renderer.Error(fmt.Sprintf("failed to write %s: %v", path, err))
		return
	}
	cmdCtx.Renderer.Println(cmdCtx.Renderer.Styles().Success.Render("formatted ") + path)
}
