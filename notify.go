package rood

import (
	"context"
	"log/slog"
)

// notifyCommands builds the notifier argv for each supported platform.
var notifyCommands = map[Platform]func(title, message string) []string{
	PlatformLinux: func(title, message string) []string {
		return []string{"notify-send", title, message}
	},
	PlatformDarwin: func(title, message string) []string {
		return []string{"terminal-notifier", "-title", title, "-message", message}
	},
}

// Notifier sends desktop notifications through the platform's notifier command.
type Notifier struct {
	Runner   CommandRunner
	Platform Platform
	Log      *slog.Logger
}

// NewNotifier creates a Notifier with explicit dependencies (for testing).
func NewNotifier(runner CommandRunner, platform Platform, log *slog.Logger) *Notifier {
	if log == nil {
		log = NewNopLogger()
	}
	return &Notifier{Runner: runner, Platform: platform, Log: log}
}

// NewDefaultNotifier creates a Notifier for the detected platform.
func NewDefaultNotifier() *Notifier {
	return NewNotifier(NewExecRunner(), DetectPlatform(), nil)
}

// Send displays a desktop notification.
// Platforms without a known notifier fail with GeneralError("Unsupported platform").
func (n *Notifier) Send(ctx context.Context, title, message string) error {
	build, ok := notifyCommands[n.Platform]
	if !ok {
		return GeneralError("Unsupported platform")
	}
	argv := build(title, message)
	return runCommand(ctx, n.Runner, n.Log, LogCategoryNotify, argv,
		"Non-zero status code when calling "+argv[0])
}
