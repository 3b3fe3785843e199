package version

import (
	"strings"
	"testing"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/highlight"
)

func TestShortCommit(t *testing.T) {
	tests := []struct {
		name string
		rev  string
		want string
	}{
		{name: "full sha", rev: "0123456789abcdef0123456789abcdef01234567", want: "0123456789ab"},
		{name: "already short", rev: "abc123", want: "abc123"},
		{name: "empty", rev: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shortCommit(tt.rev); got != tt.want {
				t.Errorf("shortCommit(%q) = %q, want %q", tt.rev, got, tt.want)
			}
		})
	}
}

func TestGet(t *testing.T) {
	info := Get()
	if info.Version == "" {
		t.Error("Version is empty")
	}
	if info.CacheFormat != highlight.CacheFormatVersion {
		t.Errorf("CacheFormat = %q, want %q", info.CacheFormat, highlight.CacheFormatVersion)
	}
	if info.GoVersion == "" || info.Platform == "" {
		t.Errorf("GoVersion = %q, Platform = %q", info.GoVersion, info.Platform)
	}
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:     "v1.0.0",
		Commit:      "abc123",
		GoVersion:   "go1.25.0",
		Platform:    "linux/amd64",
		CacheFormat: "v3",
		CacheSchema: 1,
	}
	got := info.String()
	for _, want := range []string{"lxndr v1.0.0 (abc123)", "go1.25.0 linux/amd64", "v3 (index schema 1)"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Chroma") {
		t.Error("Chroma line should be omitted when unknown")
	}
}
