package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/models"
)

// changeToTempDir changes to a temp directory and returns a cleanup function
func changeToTempDir(t *testing.T) func() {
	t.Helper()
	tmpDir := t.TempDir()
	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	return func() {
		if err := os.Chdir(originalDir); err != nil {
			t.Errorf("Failed to restore original directory: %v", err)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	cleanup := changeToTempDir(t)
	defer cleanup()
	t.Setenv(EnvMode, "")

	cfg := Load([]string{})

	if cfg.Title != "LXNDR" {
		t.Errorf("Title = %q, want %q", cfg.Title, "LXNDR")
	}
	if cfg.Mode != ModeProduction {
		t.Errorf("Mode = %q, want production", cfg.Mode)
	}
	if cfg.IsDev() {
		t.Error("IsDev() should be false by default")
	}
	if cfg.PostsDir != filepath.Join("content", "posts") {
		t.Errorf("PostsDir = %q", cfg.PostsDir)
	}
	if cfg.DraftsDir != filepath.Join("content", "drafts") {
		t.Errorf("DraftsDir = %q", cfg.DraftsDir)
	}
	if cfg.CacheDir != filepath.Join(".cache", "syntax-highlighting") {
		t.Errorf("CacheDir = %q", cfg.CacheDir)
	}
	if cfg.Highlight.LightTheme != "github" || cfg.Highlight.DarkTheme != "monokai" {
		t.Errorf("unexpected themes: %+v", cfg.Highlight)
	}
	if cfg.Workers < 1 || cfg.Workers > maxWorkers {
		t.Errorf("Workers = %d, out of range", cfg.Workers)
	}
}

func TestLoad_FromYAML(t *testing.T) {
	cleanup := changeToTempDir(t)
	defer cleanup()
	t.Setenv(EnvMode, "")

	yamlContent := `
title: "Test Site"
baseURL: "https://test.example.com/"
contentDir: "site"
descriptions:
  pt-BR: "Descrição de teste"
highlight:
  darkTheme: "dracula"
  compress: true
`
	if err := os.WriteFile("lxndr.yaml", []byte(yamlContent), 0644); err != nil {
		t.Fatalf("Failed to create test lxndr.yaml: %v", err)
	}

	cfg := Load([]string{})

	if cfg.Title != "Test Site" {
		t.Errorf("Title = %q, want %q", cfg.Title, "Test Site")
	}
	if cfg.BaseURL != "https://test.example.com" {
		t.Errorf("BaseURL = %q, trailing slash should be trimmed", cfg.BaseURL)
	}
	if cfg.PostsDir != filepath.Join("site", "posts") {
		t.Errorf("PostsDir = %q, want derived from contentDir", cfg.PostsDir)
	}
	if cfg.Highlight.DarkTheme != "dracula" {
		t.Errorf("DarkTheme = %q", cfg.Highlight.DarkTheme)
	}
	if cfg.Highlight.LightTheme != "github" {
		t.Errorf("LightTheme = %q, want default kept", cfg.Highlight.LightTheme)
	}
	if !cfg.Highlight.Compress {
		t.Error("Compress should be true")
	}
	if got := cfg.Description(models.LocalePTBR); got != "Descrição de teste" {
		t.Errorf("Description(pt-BR) = %q", got)
	}
	if got := cfg.Description(models.LocaleEN); got == "" {
		t.Error("Description(en) should keep the default")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	cleanup := changeToTempDir(t)
	defer cleanup()
	t.Setenv(EnvMode, "")

	if err := os.WriteFile("lxndr.yaml", []byte("invalid: yaml: content: ["), 0644); err != nil {
		t.Fatalf("Failed to create test lxndr.yaml: %v", err)
	}

	cfg := Load([]string{})

	if cfg.Title != "LXNDR" {
		t.Errorf("Title = %q, want default", cfg.Title)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	cleanup := changeToTempDir(t)
	defer cleanup()
	t.Setenv(EnvMode, "")

	args := []string{"-baseurl", "https://override.example.com", "-dev", "-drafts", "-workers", "1000"}
	cfg := Load(args)

	if cfg.BaseURL != "https://override.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if !cfg.IsDev() {
		t.Error("-dev should select development mode")
	}
	if !cfg.IncludeDrafts {
		t.Error("IncludeDrafts should be true")
	}
	if cfg.Workers != maxWorkers {
		t.Errorf("Workers = %d, want clamped to %d", cfg.Workers, maxWorkers)
	}
}

func TestLoad_EnvMode(t *testing.T) {
	cleanup := changeToTempDir(t)
	defer cleanup()

	tests := []struct {
		env  string
		want Mode
	}{
		{"development", ModeDevelopment},
		{"DEVELOPMENT", ModeDevelopment},
		{"production", ModeProduction},
		{"staging", ModeProduction},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(EnvMode, tt.env)
			cfg := Load([]string{})
			if cfg.Mode != tt.want {
				t.Errorf("Mode = %q, want %q", cfg.Mode, tt.want)
			}
		})
	}
}

func TestSetDevMode(t *testing.T) {
	cfg := Default()
	cfg.SetDevMode(true)
	if !cfg.IsDev() {
		t.Error("expected development mode")
	}
	cfg.SetDevMode(false)
	if cfg.IsDev() {
		t.Error("expected production mode")
	}
}
