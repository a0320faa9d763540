package iotsgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.FollowImports)
	assert.True(t, cfg.IncludeHeader)
	assert.Empty(t, cfg.FileNames)
	assert.Equal(t, "unknown", cfg.AnyType)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "tsio.yaml", "followImports: true\nincludeHeader: false\nfileNames: [a.ts, b.ts]\nanyType: any\n"},
		{"yml", "tsio.yml", "followImports: true\nincludeHeader: false\nfileNames: [a.ts, b.ts]\nanyType: any\n"},
		{"json", "tsio.json", `{"followImports": true, "includeHeader": false, "fileNames": ["a.ts", "b.ts"], "anyType": "any"}`},
		{"toml", "tsio.toml", "followImports = true\nincludeHeader = false\nfileNames = [\"a.ts\", \"b.ts\"]\nanyType = \"any\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, Config{
				FollowImports: true,
				IncludeHeader: false,
				FileNames:     []string{"a.ts", "b.ts"},
				AnyType:       "any",
			}, cfg)
		})
	}
}

func TestLoadConfig_KeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "tsio.yaml", "fileNames: [a.ts]\n"))
	require.NoError(t, err)
	assert.True(t, cfg.IncludeHeader)
	assert.Equal(t, "unknown", cfg.AnyType)

	cfg, err = LoadConfig(writeConfig(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"bad any type", "tsio.yaml", "anyType: never\n", "AnyType"},
		{"empty file name", "tsio.yaml", "fileNames: [\"\"]\n", "FileNames[0]"},
		{"unknown yaml key", "tsio.yaml", "outDir: gen\n", "outDir"},
		{"unknown toml key", "tsio.toml", "outDir = \"gen\"\n", "outDir"},
		{"bad toml", "tsio.toml", "fileNames = [\n", "parse"},
		{"unsupported extension", "tsio.ini", "x=1\n", "unsupported config format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FileNames = []string{"a.ts"}

	err := ApplyOverrides(&cfg, []string{
		"followImports=true",
		"includeHeader=false",
		"anyType=any",
		"fileNames=b.ts",
		"fileNames=c.ts",
	})
	require.NoError(t, err)
	assert.True(t, cfg.FollowImports)
	assert.False(t, cfg.IncludeHeader)
	assert.Equal(t, "any", cfg.AnyType)
	assert.Equal(t, []string{"a.ts", "b.ts", "c.ts"}, cfg.FileNames)
}

func TestApplyOverrides_Errors(t *testing.T) {
	for _, overrides := range [][]string{
		{"followImports"},
		{"=true"},
		{"anyType=sometimes"},
		{"followImports=maybe"},
		{"noSuchKey=1"},
	} {
		cfg := DefaultConfig()
		assert.Error(t, ApplyOverrides(&cfg, overrides), "%v", overrides)
	}

	cfg := DefaultConfig()
	assert.NoError(t, ApplyOverrides(&cfg, nil))
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_Visible(t *testing.T) {
	cfg := Config{FileNames: []string{"a.ts"}}
	assert.True(t, cfg.Visible("a.ts"))
	assert.False(t, cfg.Visible("b.ts"))

	cfg.FollowImports = true
	assert.True(t, cfg.Visible("b.ts"))
}
