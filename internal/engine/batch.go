package engine

import (
	"context"
	"runtime"

	"github.com/prithivirajmurugan/rs-compiler/pkg/format"
	"golang.org/x/sync/errgroup"
)

// Source is one named input.
type Source struct {
	Name string
	Text string
}

// Output is the result of formatting one Source.
type Output struct {
	Name   string
	Source string
	Doc    *format.Document
	// Err holds syntax errors. The document is still set when Err is a
	// syntax error.
	Err error
}

// Changed reports whether formatting altered the source.
func (o Output) Changed() bool {
	return o.Doc != nil && o.Doc.String() != o.Source
}

// FormatAll formats sources concurrently. Outputs are returned in input
// order. Per-source syntax errors are reported in Output.Err; the returned
// error is only set when ctx is cancelled.
func (e *Engine) FormatAll(ctx context.Context, sources []Source) ([]Output, error) {
	outputs := make([]Output, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := e.Format(src.Name, src.Text)
			outputs[i] = Output{Name: src.Name, Source: src.Text, Doc: doc, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}
