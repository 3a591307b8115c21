package rood

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	configDir           = ".rood"
	configFileName      = "settings.toml"
	localConfigFileName = "settings.local.toml"
)

// Config holds settings read from .rood/settings.toml and
// .rood/settings.local.toml.
type Config struct {
	Verbose bool      `toml:"verbose"`
	Color   ColorMode `toml:"color"`
	// Platform overrides detection when set to a known platform.
	Platform Platform `toml:"platform"`
	// Indent is the initial indentation depth.
	Indent int `toml:"indent"`
}

// LoadConfigResult holds the merged configuration and non-fatal warnings.
type LoadConfigResult struct {
	Config   *Config
	Warnings []string
}

// LoadConfig reads the project config and then the local config from dir.
// Keys defined in the local file override the project file. Missing files
// are not an error.
func LoadConfig(dir string) (*LoadConfigResult, error) {
	cfg := &Config{Color: ColorModeAuto}
	var warnings []string

	for _, name := range []string{configFileName, localConfigFileName} {
		w, err := mergeConfigFile(cfg, filepath.Join(dir, configDir, name))
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, w...)
	}

	return &LoadConfigResult{Config: cfg, Warnings: warnings}, nil
}

func mergeConfigFile(cfg *Config, path string) ([]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	var fileCfg Config
	md, err := toml.DecodeFile(path, &fileCfg)
	if err != nil {
		return nil, &Error{
			Cause:   CauseSerialization,
			Message: fmt.Sprintf("failed to parse %s: %v", path, err),
			Err:     err,
		}
	}

	if md.IsDefined("verbose") {
		cfg.Verbose = fileCfg.Verbose
	}
	if md.IsDefined("color") {
		cfg.Color = fileCfg.Color
	}
	if md.IsDefined("platform") {
		cfg.Platform = fileCfg.Platform
	}
	if md.IsDefined("indent") {
		if fileCfg.Indent < 0 {
			return nil, NewError(CauseInvalidData, fmt.Sprintf("%s: indent must not be negative, got %d", path, fileCfg.Indent))
		}
		cfg.Indent = fileCfg.Indent
	}

	var warnings []string
	for _, key := range md.Undecoded() {
		warnings = append(warnings, fmt.Sprintf("%s: unknown key %q", path, key.String()))
	}
	return warnings, nil
}

// OutputOptions returns the NewOutputManager options described by c.
func (c *Config) OutputOptions() []Option {
	opts := []Option{WithColorMode(c.Color)}
	if c.Platform != PlatformUnknown {
		opts = append(opts, WithPlatform(c.Platform))
	}
	return opts
}

// ResolvePlatform returns the configured platform, or the detected one.
func (c *Config) ResolvePlatform() Platform {
	if c.Platform != PlatformUnknown {
		return c.Platform
	}
	return DetectPlatform()
}
