package gen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/cockroachdb/errors"

	"github.com/broady/tsio/cmd/tsio/internal/options"
	"github.com/broady/tsio/cmd/tsio/internal/watch"
	"github.com/broady/tsio/iotsgen"
	"github.com/broady/tsio/iotsgen/sink"
)

type Cmd struct {
	options.Options `embed:""`

	Out   string `help:"Write output to this file instead of stdout." short:"o" type:"path"`
	Watch bool   `help:"Regenerate when the dump or config changes." short:"w"`
}

func (c *Cmd) Run(kctx *kong.Context) error {
	logger := c.Logger(os.Stderr)

	if !c.Watch {
		res, err := c.generate(context.Background(), os.Stdout, logger)
		if err != nil {
			return err
		}
		if res.Text == "" {
			// Nothing was visible; most likely no files were named.
			fmt.Fprintln(os.Stderr, "tsio gen: no declarations to emit")
			return kctx.PrintUsage(false)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w, err := watch.New(c.WatchedPaths()...)
	if err != nil {
		return err
	}
	w.Logger = logger

	regenerate := func(ctx context.Context) {
		res, err := c.generate(ctx, os.Stdout, logger)
		if err != nil {
			logger.Error("generation failed", slog.String("error", err.Error()))
			return
		}
		logger.Info("generated",
			slog.Int("declarations", len(res.Entries)),
			slog.Int("failed", len(res.Failures())),
		)
	}
	regenerate(ctx)
	logger.Info("watching for changes", slog.Any("paths", c.WatchedPaths()))
	return w.Run(ctx, regenerate)
}

// generate runs one full generation and writes the result to --out, or to
// stdout when --out is unset.
func (c *Cmd) generate(ctx context.Context, stdout io.Writer, logger *slog.Logger) (*iotsgen.Result, error) {
	g, err := c.Generator(logger)
	if err != nil {
		return nil, err
	}

	if c.Out == "" {
		return g.ToSink(ctx, sink.NewWriterSink(stdout), "stdout")
	}
	abs, err := filepath.Abs(c.Out)
	if err != nil {
		return nil, errors.Wrap(err, "resolve output path")
	}
	return g.ToSink(ctx, sink.NewFilesystemSink(filepath.Dir(abs)), filepath.Base(abs))
}
