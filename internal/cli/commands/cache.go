package commands

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prithivirajmurugan/rs-compiler/internal/state"
	"github.com/spf13/cobra"
)

// ErrNoCache is returned by the cache commands when cache.path is unset.
var ErrNoCache = errors.New("no format cache configured (set cache.path or RSC_CACHE_PATH)")

// NewCacheCommand creates the cache command and its subcommands.
func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the format cache",
		Long: `Inspect or clear the format cache.

The cache records files that fmt --check or fmt --write found in canonical
form. It lives at cache.path and is only used when that is set.`,
	}
	cmd.AddCommand(newCacheListCommand(), newCacheClearCommand())
	return cmd
}

func newCacheListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cache, err := openCache(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = cache.Close() }()

			entries, err := cache.Entries(cmd.Context())
			if err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if len(entries) == 0 {
				r.Println(r.Styles().Muted.Render("(cache is empty)"))
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(r.Writer())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Path", "Indent", "Checked", "Hash"})
			for _, e := range entries {
				t.AppendRow(table.Row{e.Path, e.IndentWidth, e.CheckedAt.Format("2006-01-02 15:04:05"), e.Hash[:min(12, len(e.Hash))]})
			}
			t.Render()
			return nil
		},
	}
}

func newCacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cache, err := openCache(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = cache.Close() }()

			n, err := cache.Clear(cmd.Context())
			if err != nil {
				return err
			}
			r := cmdCtx.Renderer
			r.Println(r.Styles().Success.Render("cleared ") + fmt.Sprintf("%d file(s) from %s", n, cache.Path()))
			return nil
		},
	}
}

func openCache(cmd *cobra.Command) (*CommandContext, *state.Store, error) {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return nil, nil, err
	}
	if cmdCtx.Cfg.Cache.Path == "" {
		return nil, nil, ErrNoCache
	}
	cache, err := state.Open(cmd.Context(), cmdCtx.Cfg.Cache.Path, cmdCtx.Logger)
	if err != nil {
		return nil, nil, err
	}
	return cmdCtx, cache, nil
}
