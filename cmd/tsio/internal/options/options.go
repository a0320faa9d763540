// Package options holds the flags shared by the generating subcommands.
package options

import (
	"io"
	"log/slog"

	"github.com/broady/tsio/iotsgen"
	"github.com/broady/tsio/iotsgen/checker/typedump"
)

// Options selects the type dump and the generation config. Precedence, lowest
// first: defaults, --config file, --set overrides, dedicated flags.
type Options struct {
	Dump          string   `help:"Type dump (YAML or JSON) written by the type checker." required:"" short:"d" type:"existingfile"`
	Files         []string `arg:"" optional:"" help:"Files whose declarations are emitted."`
	FollowImports bool     `help:"Emit declarations from every non-declaration file."`
	NoHeader      bool     `help:"Omit the io-ts import statement."`
	AnyType       string   `help:"Codec for the any type (unknown or any)." placeholder:"MODE"`
	ConfigFile    string   `help:"Config file (.yaml, .yml, .json or .toml)." name:"config" short:"c" type:"existingfile"`
	Set           []string `help:"Override a config field." placeholder:"KEY=VALUE" sep:"none"`
	Verbose       bool     `help:"Log debug output." short:"v"`
}

// Config builds the generation config from all sources.
func (o *Options) Config() (iotsgen.Config, error) {
	cfg := iotsgen.DefaultConfig()
	if o.ConfigFile != "" {
		var err error
		if cfg, err = iotsgen.LoadConfig(o.ConfigFile); err != nil {
			return cfg, err
		}
	}
	if err := iotsgen.ApplyOverrides(&cfg, o.Set); err != nil {
		return cfg, err
	}

	cfg.FileNames = append(cfg.FileNames, o.Files...)
	if o.FollowImports {
		cfg.FollowImports = true
	}
	if o.NoHeader {
		cfg.IncludeHeader = false
	}
	if o.AnyType != "" {
		cfg.AnyType = o.AnyType
	}
	return cfg, cfg.Validate()
}

// Logger returns a text logger on w at Info, or Debug with --verbose.
func (o *Options) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Generator loads the dump and returns a configured generator.
func (o *Options) Generator(logger *slog.Logger) (*iotsgen.Generator, error) {
	cfg, err := o.Config()
	if err != nil {
		return nil, err
	}
	p, err := typedump.LoadFile(o.Dump)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded type dump",
		slog.String("dump", o.Dump),
		slog.Int("files", len(p.SourceFiles())),
	)
	return iotsgen.FromChecker(p).WithConfig(cfg).WithLogger(logger), nil
}

// WatchedPaths lists the inputs whose changes trigger regeneration.
func (o *Options) WatchedPaths() []string {
	paths := []string{o.Dump}
	if o.ConfigFile != "" {
		paths = append(paths, o.ConfigFile)
	}
	return paths
}
