// Package version carries build metadata injected with -ldflags.
package version

import (
	"runtime"
	"strings"
)

// Set at build time:
//
//	-ldflags "-X github.com/orris-inc/servicedesk/internal/shared/version.Current=v1.2.3"
var (
	Current   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

func Get() Info {
	return Info{
		Version:   Normalize(Current),
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

// Normalize adds the "v" prefix to numeric versions: "1.2.3" -> "v1.2.3".
// Named builds such as "dev" are returned unchanged.
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" || strings.HasPrefix(version, "v") {
		return version
	}
	if version[0] < '0' || version[0] > '9' {
		return version
	}
	return "v" + version
}

// String renders the one-line form printed by the version command.
func (i Info) String() string {
	return "servicedesk " + i.Version + " (commit " + i.Commit + ", built " + i.BuildTime + ", " + i.GoVersion + ")"
}
