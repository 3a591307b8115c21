//go:build integration

package rood

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitCommand_Integration(t *testing.T) {
	t.Parallel()

	t.Run("TemplateLoadsWithoutWarnings", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if _, err := NewDefaultInitCommand().Run(dir, InitOptions{}); err != nil {
			t.Fatal(err)
		}
		if _, err := os.Stat(filepath.Join(dir, ".rood", "settings.toml")); err != nil {
			t.Fatal(err)
		}

		result, err := LoadConfig(dir)
		if err != nil {
			t.Fatalf("LoadConfig() error: %v", err)
		}
		if len(result.Warnings) != 0 {
			t.Errorf("Warnings = %v, want none", result.Warnings)
		}
		if result.Config.Color != ColorModeAuto || result.Config.Verbose {
			t.Errorf("Config = %+v, want template defaults", result.Config)
		}
	})

	t.Run("ForceOverwrites", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cmd := NewDefaultInitCommand()
		if _, err := cmd.Run(dir, InitOptions{}); err != nil {
			t.Fatal(err)
		}

		result, err := cmd.Run(dir, InitOptions{})
		if err != nil {
			t.Fatal(err)
		}
		if !result.Skipped {
			t.Error("second Run without Force should skip")
		}

		result, err = cmd.Run(dir, InitOptions{Force: true})
		if err != nil {
			t.Fatal(err)
		}
		if !result.Created || !result.Overwritten {
			t.Errorf("Run(Force) = %+v, want Created and Overwritten", result)
		}
	})
}
