package rood

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSettings(t *testing.T, dir, name, content string) {
	t.Helper()

	roodDir := filepath.Join(dir, configDir)
	if err := os.MkdirAll(roodDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(roodDir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	result, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	cfg := result.Config
	if cfg.Verbose || cfg.Color != ColorModeAuto || cfg.Platform != PlatformUnknown || cfg.Indent != 0 {
		t.Errorf("defaults = %+v", cfg)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}
}

func TestLoadConfig_ProjectSettings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSettings(t, dir, configFileName, `verbose = true
color = "never"
platform = "macos"
indent = 2
`)

	result, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}

	cfg := result.Config
	if !cfg.Verbose {
		t.Error("Verbose = false, want true")
	}
	if cfg.Color != ColorModeNever {
		t.Errorf("Color = %q, want never", cfg.Color)
	}
	if cfg.Platform != PlatformDarwin {
		t.Errorf("Platform = %v, want darwin", cfg.Platform)
	}
	if cfg.Indent != 2 {
		t.Errorf("Indent = %d, want 2", cfg.Indent)
	}
	if got := cfg.ResolvePlatform(); got != PlatformDarwin {
		t.Errorf("ResolvePlatform() = %v, want darwin", got)
	}
}

func TestLoadConfig_LocalOverridesProject(t *testing.T) {
	t.Parallel()

	t.Run("DefinedKeysOverride", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeSettings(t, dir, configFileName, `verbose = true
color = "always"
`)
		writeSettings(t, dir, localConfigFileName, `verbose = false
`)

		result, err := LoadConfig(dir)
		if err != nil {
			t.Fatal(err)
		}

		// verbose comes from local, color from project
		if result.Config.Verbose {
			t.Error("Verbose = true, want false from local config")
		}
		if result.Config.Color != ColorModeAlways {
			t.Errorf("Color = %q, want always from project config", result.Config.Color)
		}
	})

	t.Run("LocalOnly", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeSettings(t, dir, localConfigFileName, `indent = 1
`)

		result, err := LoadConfig(dir)
		if err != nil {
			t.Fatal(err)
		}
		if result.Config.Indent != 1 {
			t.Errorf("Indent = %d, want 1", result.Config.Indent)
		}
	})
}

func TestLoadConfig_UnknownKeyWarning(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSettings(t, dir, configFileName, `verbose = true
colour = "never"
`)

	result, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], `unknown key "colour"`) {
		t.Errorf("Warnings = %v, want one unknown key warning", result.Warnings)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		wantCause Cause
	}{
		{
			name:      "invalid_toml",
			content:   "verbose = \n",
			wantCause: CauseSerialization,
		},
		{
			name:      "invalid_color_mode",
			content:   `color = "rainbow"` + "\n",
			wantCause: CauseSerialization,
		},
		{
			name:      "negative_indent",
			content:   "indent = -1\n",
			wantCause: CauseInvalidData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeSettings(t, dir, configFileName, tt.content)

			_, err := LoadConfig(dir)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if cause, _ := CauseOf(err); cause != tt.wantCause {
				t.Errorf("cause = %v, want %v (err: %v)", cause, tt.wantCause, err)
			}
		})
	}
}

func TestConfig_OutputOptions(t *testing.T) {
	t.Parallel()

	cfg := &Config{Color: ColorModeNever, Platform: PlatformWindows}
	if got := len(cfg.OutputOptions()); got != 2 {
		t.Errorf("len(OutputOptions()) = %d, want 2", got)
	}

	cfg = &Config{Color: ColorModeAuto}
	if got := len(cfg.OutputOptions()); got != 1 {
		t.Errorf("len(OutputOptions()) = %d, want 1", got)
	}
	if got := cfg.ResolvePlatform(); got != DetectPlatform() {
		t.Errorf("ResolvePlatform() = %v, want detected %v", got, DetectPlatform())
	}
}
