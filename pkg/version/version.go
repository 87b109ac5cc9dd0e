// Package version exposes build metadata set with -ldflags.
package version

import "runtime/debug"

// Set at build time:
//
//	go build -ldflags "-X github.com/rshade/userdir/pkg/version.version=v1.2.3"
//
//nolint:gochecknoglobals // populated by the linker
var (
	version = ""
	commit  = ""
)

const devVersion = "dev"

// GetVersion returns the linker-set version, the module version, or "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return devVersion
}

// GetCommit returns the linker-set commit, or the VCS revision from build info.
func GetCommit() string {
	if commit != "" {
		return commit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return ""
}
