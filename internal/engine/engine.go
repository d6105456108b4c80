// Package engine is the entry point shared by the command line, the REPL
// and the playground server. It parses source text and hands the tree to
// the formatter or the resolver.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/prithivirajmurugan/rs-compiler/pkg/ast"
	"github.com/prithivirajmurugan/rs-compiler/pkg/format"
	"github.com/prithivirajmurugan/rs-compiler/pkg/parser"
)

// Engine formats and resolves source files. It is safe for concurrent use;
// every call parses its own tree.
type Engine struct {
	indentWidth int
	palette     format.Palette
	logger      *slog.Logger

	mu     sync.Mutex
	hashes map[string]string // path -> content hash of the last formatted version
}

// Config holds engine configuration.
type Config struct {
	// IndentWidth is the number of spaces per block level (default 2).
	IndentWidth int
	// Palette colours the ANSI output (default format.DefaultPalette).
	Palette format.Palette
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	palette := cfg.Palette
	if palette == nil {
		palette = format.DefaultPalette()
	}

	indent := cfg.IndentWidth
	if indent <= 0 {
		indent = 2
	}

	logger.Debug("initializing engine", "indent_width", indent)

	return &Engine{
		indentWidth: indent,
		palette:     palette,
		logger:      logger,
		hashes:      make(map[string]string),
	}
}

// Palette returns the colours used for ANSI output.
func (e *Engine) Palette() format.Palette {
	return e.palette
}

// IndentWidth returns the configured block indentation.
func (e *Engine) IndentWidth() int {
	return e.indentWidth
}

// parse parses src and checks the tree's references. Syntax errors are
// returned with the tree so callers can still render it.
func (e *Engine) parse(name, src string) (*ast.Tree, error) {
	tree, err := parser.Parse(src)
	if verr := tree.Validate(); verr != nil {
		return nil, fmt.Errorf("%s: malformed tree: %w", name, verr)
	}
	if err != nil {
		var list parser.ErrorList
		count := 1
		if errors.As(err, &list) {
			count = len(list)
		}
		e.logger.Warn("syntax errors", "file", name, "count", count)
		return tree, fmt.Errorf("%s: %w", name, err)
	}
	return tree, nil
}

// Format parses src and formats it with the engine's settings. On syntax
// errors the document is still returned; unparseable regions are echoed as
// they were written.
func (e *Engine) Format(name, src string) (*format.Document, error) {
	return e.FormatWidth(name, src, e.indentWidth)
}

// FormatWidth is Format with an explicit indentation width.
func (e *Engine) FormatWidth(name, src string, indent int) (*format.Document, error) {
	e.logger.Debug("formatting", "file", name, "bytes", len(src))

	tree, err := e.parse(name, src)
	if tree == nil {
		return nil, err
	}
	return format.Format(tree, format.WithIndentWidth(indent)), err
}

// IsSyntaxError reports whether err carries parse errors, as opposed to an
// I/O or internal failure.
func IsSyntaxError(err error) bool {
	var list parser.ErrorList
	return errors.As(err, &list)
}
