package iotsgen

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"gopkg.in/yaml.v3"

	"github.com/broady/tsio/iotsgen/codec"
)

var (
	validate        = validator.New()
	overrideDecoder = newOverrideDecoder()
)

func newOverrideDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.SetAliasTag("schema")
	d.IgnoreUnknownKeys(false)
	return d
}

// Config holds the configuration for codec generation.
type Config struct {
	// FollowImports emits declarations from every non-declaration file of the
	// program, not just FileNames.
	FollowImports bool `yaml:"followImports" toml:"followImports" schema:"followImports"`

	// IncludeHeader prepends the io-ts import statement.
	// Default: true
	IncludeHeader bool `yaml:"includeHeader" toml:"includeHeader" schema:"includeHeader"`

	// FileNames are the files whose declarations are emitted, matched against
	// the file names reported by the checker.
	FileNames []string `yaml:"fileNames" toml:"fileNames" schema:"fileNames" validate:"dive,required"`

	// AnyType selects the codec for the any type.
	// Supported values: "unknown" (any and unknown both emit t.unknown), "any".
	// Default: "unknown"
	AnyType string `yaml:"anyType" toml:"anyType" schema:"anyType" validate:"omitempty,oneof=unknown any"`
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		FollowImports: false,
		IncludeHeader: true,
		FileNames:     []string{},
		AnyType:       codec.AnyAsUnknown,
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fe.Namespace() + ": failed " + fe.Tag()
				if fe.Param() != "" {
					msgs[i] += "=" + fe.Param()
				}
			}
			return errors.Newf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

// Visible reports whether declarations from file are emitted.
func (c *Config) Visible(file string) bool {
	if c.FollowImports {
		return true
	}
	for _, name := range c.FileNames {
		if name == file {
			return true
		}
	}
	return false
}

func (c *Config) codecOptions() codec.Options {
	return codec.Options{AnyType: c.AnyType}
}

// LoadConfig reads a config file on top of DefaultConfig. The format follows
// the extension: .yaml, .yml and .json are YAML; .toml is TOML.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && len(bytes.TrimSpace(data)) > 0 {
			return cfg, errors.Wrapf(err, "parse %s", path)
		}
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, errors.Wrapf(err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, errors.Newf("parse %s: unknown keys %v", path, undecoded)
		}
	default:
		return cfg, errors.WithHint(
			errors.Newf("unsupported config format %q", ext),
			"use a .yaml, .yml, .json or .toml file")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

// ApplyOverrides sets fields from "key=value" pairs, e.g. "followImports=true".
// Repeating a key with a list field appends ("fileNames=a.ts", "fileNames=b.ts").
func ApplyOverrides(cfg *Config, overrides []string) error {
	if len(overrides) == 0 {
		return nil
	}
	values := make(map[string][]string)
	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return errors.WithHint(errors.Newf("invalid override %q", kv), "overrides have the form key=value")
		}
		values[key] = append(values[key], value)
	}
	if list, ok := values["fileNames"]; ok {
		// The decoder replaces slices; keep names from earlier layers.
		values["fileNames"] = append(append([]string{}, cfg.FileNames...), list...)
	}
	if err := overrideDecoder.Decode(cfg, values); err != nil {
		return errors.Wrap(err, "apply overrides")
	}
	return cfg.Validate()
}
