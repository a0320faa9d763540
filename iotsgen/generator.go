// Package iotsgen generates io-ts codecs for the declarations of a checked
// TypeScript program.
//
// The entry point is the fluent Generator:
//
//	res, err := iotsgen.FromDump("types.yaml").
//	    FileNames("src/model.ts").
//	    AnyType("any").
//	    Generate(ctx)
//
// Walk and Render expose the two halves separately.
package iotsgen

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/broady/tsio/iotsgen/checker"
	"github.com/broady/tsio/iotsgen/checker/typedump"
	"github.com/broady/tsio/iotsgen/codec"
	"github.com/broady/tsio/iotsgen/sink"
)

// Generator provides a fluent API for codec generation.
// Create with FromChecker or FromDump and configure with method chaining.
type Generator struct {
	checker  checker.Checker
	dumpPath string
	cfg      Config
	logger   *slog.Logger
}

// FromChecker creates a Generator reading types from c.
func FromChecker(c checker.Checker) *Generator {
	return &Generator{checker: c, cfg: DefaultConfig()}
}

// FromDump creates a Generator reading types from a type dump file.
// The file is loaded when a terminal operation runs.
func FromDump(path string) *Generator {
	return &Generator{dumpPath: path, cfg: DefaultConfig()}
}

// WithConfig replaces the whole configuration.
func (g *Generator) WithConfig(cfg Config) *Generator {
	g.cfg = cfg
	return g
}

// FileNames adds files whose declarations are emitted.
func (g *Generator) FileNames(names ...string) *Generator {
	g.cfg.FileNames = append(g.cfg.FileNames, names...)
	return g
}

// FollowImports emits declarations from every non-declaration file.
func (g *Generator) FollowImports() *Generator {
	g.cfg.FollowImports = true
	return g
}

// WithoutHeader omits the io-ts import statement.
func (g *Generator) WithoutHeader() *Generator {
	g.cfg.IncludeHeader = false
	return g
}

// AnyType selects the codec for the any type.
// Valid values: "unknown" (default), "any".
func (g *Generator) AnyType(mode string) *Generator {
	g.cfg.AnyType = mode
	return g
}

// WithLogger sets the logger for failures and warnings.
func (g *Generator) WithLogger(logger *slog.Logger) *Generator {
	g.logger = logger
	return g
}

// Result is the outcome of a generation run.
type Result struct {
	// Text is the rendered output. Empty when no declaration was visible.
	Text string

	// Entries holds one entry per emitted declaration, in output order.
	Entries []Entry

	// Warnings collects the warnings of all entries.
	Warnings []codec.Warning
}

// Failures returns the entries for which no codec could be generated.
func (r *Result) Failures() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Failed() {
			out = append(out, e)
		}
	}
	return out
}

// Generate walks the program and renders the output.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	c, err := g.resolveChecker()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := Walk(c, c.SourceFiles(), g.cfg, WalkOptions{Logger: g.logger})
	res := &Result{
		Text:    Render(entries, g.cfg),
		Entries: entries,
	}
	for _, e := range entries {
		res.Warnings = append(res.Warnings, e.Warnings...)
	}
	return res, nil
}

// ToSink generates and writes the output to path within s, followed by a
// newline. Nothing is written when the output is empty.
func (g *Generator) ToSink(ctx context.Context, s sink.OutputSink, path string) (*Result, error) {
	res, err := g.Generate(ctx)
	if err != nil {
		return nil, err
	}
	if res.Text == "" {
		return res, nil
	}
	if err := s.WriteFile(ctx, path, []byte(res.Text+"\n")); err != nil {
		return res, errors.Wrapf(err, "write %s", path)
	}
	return res, nil
}

func (g *Generator) resolveChecker() (checker.Checker, error) {
	if g.checker != nil {
		return g.checker, nil
	}
	if g.dumpPath == "" {
		return nil, errors.AssertionFailedf("generator has neither a checker nor a dump path")
	}
	p, err := typedump.LoadFile(g.dumpPath)
	if err != nil {
		return nil, err
	}
	return p, nil
}
