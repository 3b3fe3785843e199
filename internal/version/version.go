package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/cache"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/highlight"
)

// Version is set at link time with -ldflags "-X .../internal/version.Version=v1.2.3".
var Version = "dev"

// Info describes the running binary.
type Info struct {
	Version       string
	Commit        string
	GoVersion     string
	Platform      string
	CacheFormat   string
	CacheSchema   int
	ChromaVersion string
}

// Get collects build information from the linker variables and the module
// build info embedded by the Go toolchain.
func Get() Info {
	info := Info{
		Version:     Version,
		GoVersion:   runtime.Version(),
		Platform:    runtime.GOOS + "/" + runtime.GOARCH,
		CacheFormat: highlight.CacheFormatVersion,
		CacheSchema: cache.SchemaVersion,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			info.Commit = shortCommit(s.Value)
		}
	}
	for _, dep := range bi.Deps {
		if strings.HasPrefix(dep.Path, "github.com/alecthomas/chroma") {
			info.ChromaVersion = dep.Version
		}
	}
	return info
}

func shortCommit(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

// String renders the info the way `lxndr version` prints it.
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "lxndr %s", i.Version)
	if i.Commit != "" {
		fmt.Fprintf(&b, " (%s)", i.Commit)
	}
	fmt.Fprintf(&b, "\n   Go:           %s %s", i.GoVersion, i.Platform)
	fmt.Fprintf(&b, "\n   Cache format: %s (index schema %d)", i.CacheFormat, i.CacheSchema)
	if i.ChromaVersion != "" {
		fmt.Fprintf(&b, "\n   Chroma:       %s", i.ChromaVersion)
	}
	return b.String()
}

// Run prints version information.
func Run() {
	fmt.Println("📚 " + Get().String())
}
