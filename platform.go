package rood

import (
	"runtime"
	"strings"
)

// Platform identifies an operating system family.
type Platform int

const (
	PlatformUnknown Platform = iota
	PlatformWindows
	PlatformDarwin
	PlatformLinux
)

// platformAliases maps each platform to its accepted names.
// The first alias is the canonical one.
var platformAliases = []struct {
	platform Platform
	aliases  []string
}{
	{PlatformWindows, []string{"windows", "win", "win32"}},
	{PlatformDarwin, []string{"darwin", "macos", "osx"}},
	{PlatformLinux, []string{"linux"}},
	{PlatformUnknown, []string{"unknown"}},
}

// DetectPlatform returns the platform the binary runs on.
func DetectPlatform() Platform {
	return ParsePlatform(runtime.GOOS)
}

// ParsePlatform returns the platform matching any accepted alias of s.
// Matching is case-insensitive. Unrecognized input yields PlatformUnknown.
func ParsePlatform(s string) Platform {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, entry := range platformAliases {
		for _, alias := range entry.aliases {
			if alias == s {
				return entry.platform
			}
		}
	}
	return PlatformUnknown
}

// Aliases returns every name accepted for p.
func (p Platform) Aliases() []string {
	for _, entry := range platformAliases {
		if entry.platform == p {
			return append([]string(nil), entry.aliases...)
		}
	}
	return []string{"unknown"}
}

// String returns the canonical name of p.
func (p Platform) String() string {
	return p.Aliases()[0]
}

// IsPOSIX reports whether p uses POSIX file permissions.
func (p Platform) IsPOSIX() bool {
	return p == PlatformLinux || p == PlatformDarwin
}

// MarshalText implements encoding.TextMarshaler.
func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Unknown names decode to PlatformUnknown rather than failing.
func (p *Platform) UnmarshalText(text []byte) error {
	*p = ParsePlatform(string(text))
	return nil
}
