package rood

import (
	"runtime"
	"strings"
)

// Architecture identifies a processor architecture.
type Architecture int

const (
	ArchUnknown Architecture = iota
	ArchAmd64
	ArchArm
	ArchArm64
)

var architectureAliases = []struct {
	arch    Architecture
	aliases []string
}{
	{ArchAmd64, []string{"amd64", "x64", "x86_64"}},
	{ArchArm, []string{"arm", "armv7"}},
	{ArchArm64, []string{"arm64", "aarch64"}},
	{ArchUnknown, []string{"unknown"}},
}

// DetectArchitecture returns the architecture the binary was built for.
func DetectArchitecture() Architecture {
	return ParseArchitecture(runtime.GOARCH)
}

// ParseArchitecture returns the architecture matching any accepted alias of s,
// or ArchUnknown.
func ParseArchitecture(s string) Architecture {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, entry := range architectureAliases {
		for _, alias := range entry.aliases {
			if alias == s {
				return entry.arch
			}
		}
	}
	return ArchUnknown
}

// Aliases returns every name accepted for a.
func (a Architecture) Aliases() []string {
	for _, entry := range architectureAliases {
		if entry.arch == a {
			return append([]string(nil), entry.aliases...)
		}
	}
	return []string{"unknown"}
}

func (a Architecture) String() string {
	return a.Aliases()[0]
}

// MarshalText implements encoding.TextMarshaler.
func (a Architecture) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Architecture) UnmarshalText(text []byte) error {
	*a = ParseArchitecture(string(text))
	return nil
}
