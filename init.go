package rood

import (
	"fmt"
	"path/filepath"
)

const settingsTemplate = `# rood settings
# Keys in settings.local.toml override the keys defined here.

# Show debug output (same as -v)
verbose = false

# Color output: auto, always, never
color = "auto"

# Override platform detection: linux, darwin (macos), windows
# platform = "linux"

# Initial indentation depth
indent = 0
`

// InitCommand writes a settings template into a directory.
type InitCommand struct {
	FS FileSystem
}

// InitOptions holds options for InitCommand.
type InitOptions struct {
	Force bool
}

// InitResult describes what InitCommand did.
type InitResult struct {
	SettingsPath string
	Created      bool
	Skipped      bool
	Overwritten  bool
}

// NewInitCommand creates an InitCommand with explicit dependencies (for testing).
func NewInitCommand(fs FileSystem) *InitCommand {
	return &InitCommand{FS: fs}
}

// NewDefaultInitCommand creates an InitCommand over the real filesystem.
func NewDefaultInitCommand() *InitCommand {
	return NewInitCommand(osFS{})
}

// Run creates <dir>/.rood/settings.toml. An existing file is left alone
// unless opts.Force is set.
func (c *InitCommand) Run(dir string, opts InitOptions) (InitResult, error) {
	configDirPath := filepath.Join(dir, configDir)
	settingsPath := filepath.Join(configDirPath, configFileName)
	result := InitResult{SettingsPath: settingsPath}

	_, err := c.FS.Stat(settingsPath)
	exists := err == nil || !c.FS.IsNotExist(err)

	if exists && !opts.Force {
		result.Skipped = true
		return result, nil
	}

	if err := c.FS.MkdirAll(configDirPath, 0755); err != nil {
		return result, IOError(fmt.Errorf("failed to create config directory: %w", err))
	}
	if err := c.FS.WriteFile(settingsPath, []byte(settingsTemplate), 0644); err != nil {
		return result, IOError(fmt.Errorf("failed to write settings file: %w", err))
	}

	result.Created = true
	result.Overwritten = exists
	return result, nil
}

// Report renders the result on out.
func (r InitResult) Report(out OutputManager) {
	rel := filepath.Join(configDir, configFileName)
	switch {
	case r.Skipped:
		out.Progress(fmt.Sprintf("Skipped %s (already exists)", rel))
	case r.Overwritten:
		out.Success(fmt.Sprintf("Created %s (overwritten)", rel))
	case r.Created:
		out.Success("Created " + rel)
	}
}
