package main

import (
	"runtime/debug"

	"github.com/rafaelq/fieldlog/cmd"
)

// Version is set at build time via -ldflags "-X main.Version=...".
var Version = "dev"

// effectiveVersion prefers the build-injected version, then the module
// version recorded by `go install module@vX.Y.Z`.
func effectiveVersion(v string) string {
	if v != "" && v != "dev" {
		return v
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return v
}

func main() {
	cmd.SetVersion(effectiveVersion(Version))
	cmd.Execute()
}
