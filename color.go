package rood

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// ColorMode defines color output behavior.
type ColorMode string

const (
	ColorModeAuto   ColorMode = "auto"   // Color when interactive and NO_COLOR is unset
	ColorModeAlways ColorMode = "always" // Color whenever interactive
	ColorModeNever  ColorMode = "never"  // No color
)

// ParseColorMode validates s as a ColorMode. An empty string means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(s) {
	case "":
		return ColorModeAuto, nil
	case ColorModeAuto, ColorModeAlways, ColorModeNever:
		return ColorMode(s), nil
	}
	return "", NewError(CauseInvalidData, fmt.Sprintf("invalid color mode %q (want auto, always or never)", s))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ColorMode) UnmarshalText(text []byte) error {
	mode, err := ParseColorMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// enabled reports whether color codes should be emitted.
// Non-interactive output is never colored.
func (m ColorMode) enabled(interactive bool) bool {
	if !interactive {
		return false
	}
	switch m {
	case ColorModeNever:
		return false
	case ColorModeAlways:
		return true
	default:
		return os.Getenv("NO_COLOR") == ""
	}
}

// channel describes one kind of rendered line.
type channel struct {
	marker      string
	attrs       []color.Attribute // nil renders in the default color
	verboseOnly bool
}

var (
	channelStep     = channel{marker: "+", attrs: []color.Attribute{color.FgYellow}}
	channelSuccess  = channel{marker: "+", attrs: []color.Attribute{color.FgGreen}}
	channelProgress = channel{marker: ""}
	channelDebug    = channel{marker: "-", attrs: []color.Attribute{color.FgBlue}, verboseOnly: true}
	channelError    = channel{marker: "!", attrs: []color.Attribute{color.FgRed}}
	channelQuestion = channel{marker: "?", attrs: []color.Attribute{color.FgBlue}}
)

// paint returns msg wrapped in the channel's color codes when enabled.
func (c channel) paint(msg string, enabled bool) string {
	if len(c.attrs) == 0 {
		return msg
	}
	col := color.New(c.attrs...)
	if enabled {
		col.EnableColor()
	} else {
		col.DisableColor()
	}
	return col.Sprint(msg)
}
