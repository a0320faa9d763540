package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version returns the module version for `go install ...@version` builds,
// and "devel-<VERSION>[+<revision>]" otherwise.
func Version() string {
	info, _ := debug.ReadBuildInfo()
	return version(strings.TrimSpace(embeddedVersion), info)
}

func version(base string, info *debug.BuildInfo) string {
	if info == nil {
		return base
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	out := "devel-" + base
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			out += "+" + s.Value[:7]
		}
		if s.Key == "vcs.modified" && s.Value == "true" {
			out += "-dirty"
		}
	}
	return out
}
