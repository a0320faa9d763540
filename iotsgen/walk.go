package iotsgen

import (
	"log/slog"
	"strings"

	"github.com/broady/tsio/iotsgen/checker"
	"github.com/broady/tsio/iotsgen/codec"
)

// Entry is the outcome of one emitted declaration. Exactly one of Codec and
// Err is set.
type Entry struct {
	Kind     checker.DeclarationKind
	Name     string
	File     string
	Codec    string
	Err      error
	Warnings []codec.Warning
}

// Failed reports whether no codec could be generated.
func (e Entry) Failed() bool {
	return e.Err != nil
}

// Line renders the entry as one output statement.
func (e Entry) Line() string {
	if e.Err != nil {
		return "// Error: Failed to generate a codec for " + e.Kind.String()
	}
	if e.Kind == checker.DeclarationVariable {
		return e.Codec
	}
	return "const " + codec.BindingName(e.Name) + " = " + e.Codec
}

// WalkOptions configures Walk.
type WalkOptions struct {
	// Logger receives per-declaration failures and warnings.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

// Walk emits a codec for every visible declaration of files, in file and
// declaration order. Declaration files are skipped, as are files outside
// cfg.FileNames unless cfg.FollowImports is set. Namespaces contribute their
// children in place. A failed declaration yields an Entry with Err set and
// does not stop the walk.
func Walk(c checker.Checker, files []checker.SourceFile, cfg Config, opts WalkOptions) []Entry {
	w := &walker{
		checker: c,
		cfg:     cfg,
		logger:  opts.Logger,
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}

	for _, f := range files {
		if f.DeclarationFile {
			w.logger.Debug("skipping declaration file", slog.String("file", f.Name))
			continue
		}
		if !cfg.Visible(f.Name) {
			continue
		}
		w.visit(f.Name, f.Declarations)
	}
	return w.entries
}

type walker struct {
	checker checker.Checker
	cfg     Config
	logger  *slog.Logger
	entries []Entry
}

func (w *walker) visit(file string, decls []checker.Declaration) {
	for _, d := range decls {
		if d.Kind == checker.DeclarationNamespace {
			w.visit(file, d.Children)
			continue
		}
		w.entries = append(w.entries, w.emit(file, d))
	}
}

func (w *walker) emit(file string, d checker.Declaration) Entry {
	if d.File != "" {
		file = d.File
	}
	entry := Entry{Kind: d.Kind, Name: d.Name, File: file}

	// Each declaration gets its own emitter so no state leaks between them.
	e := codec.NewEmitter(w.checker, w.cfg.codecOptions())
	entry.Codec, entry.Err = e.Emit(d.Type)
	entry.Warnings = e.Warnings()

	if entry.Err != nil {
		entry.Codec = ""
		w.logger.Warn("failed to generate codec",
			slog.String("file", file),
			slog.String("declaration", d.Name),
			slog.String("kind", d.Kind.String()),
			slog.String("error", entry.Err.Error()),
		)
	}
	for _, warn := range entry.Warnings {
		w.logger.Warn(warn.Message,
			slog.String("code", warn.Code),
			slog.String("file", file),
			slog.String("declaration", d.Name),
			slog.String("type", warn.TypeName),
		)
	}
	return entry
}

// Render joins the entry lines with blank lines, preceded by the io-ts import
// when cfg.IncludeHeader is set. No entries render as the empty string.
func Render(entries []Entry, cfg Config) string {
	if len(entries) == 0 {
		return ""
	}
	lines := make([]string, 0, len(entries)+1)
	if cfg.IncludeHeader {
		lines = append(lines, codec.ImportStatement)
	}
	for _, e := range entries {
		lines = append(lines, e.Line())
	}
	return strings.Join(lines, "\n\n")
}
