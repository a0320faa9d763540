package check

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/broady/tsio/cmd/tsio/internal/options"
	"github.com/broady/tsio/iotsgen"
)

type Cmd struct {
	options.Options `embed:""`
}

func (c *Cmd) Run() error {
	return c.run(context.Background(), os.Stdout)
}

func (c *Cmd) run(ctx context.Context, w io.Writer) error {
	// Failures are reported below; keep the walker quiet unless --verbose.
	logger := c.Logger(io.Discard)
	if c.Verbose {
		logger = c.Logger(os.Stderr)
	}
	g, err := c.Generator(logger)
	if err != nil {
		return err
	}
	res, err := g.Generate(ctx)
	if err != nil {
		return err
	}
	return report(w, res)
}

func report(w io.Writer, res *iotsgen.Result) error {
	failures := res.Failures()
	for _, e := range failures {
		fmt.Fprintf(w, "✗ %s: %s %s: %v\n", e.File, e.Kind, e.Name, e.Err)
	}
	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "! %s: %s (%s)\n", warn.Code, warn.Message, warn.TypeName)
	}

	ok := len(res.Entries) - len(failures)
	fmt.Fprintf(w, "✓ %d of %d declarations have codecs\n", ok, len(res.Entries))
	if len(failures) > 0 {
		return errors.Newf("%d declarations failed", len(failures))
	}
	return nil
}
