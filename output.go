package rood

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
)

// OutputManager renders leveled, indented, color-coded lines and prompts
// for user input.
//
// An OutputManager is an immutable value. Push and WithPadding return new
// managers with a different indentation depth that share the verbosity and
// the underlying streams of the original:
//
//	out := rood.NewOutputManager(verbose)
//	out.Step("build")
//	out.Push().Debug("cache miss")
//	out.Success("build done")
//
// Managers do not synchronize writes. Callers writing from several
// goroutines must serialize them.
type OutputManager struct {
	verbose bool
	depth   int
	s       *session
}

// session holds what every manager derived from the same constructor call shares.
type session struct {
	out       io.Writer
	src       io.Reader
	in        *bufio.Reader
	term      Terminal
	colorMode ColorMode
	runner    CommandRunner
	platform  Platform
	log       *slog.Logger
}

// Option configures NewOutputManager.
type Option func(*session)

// WithWriter sets the output stream. Defaults to os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(s *session) {
		s.out = w
	}
}

// WithReader sets the input stream prompts read from. Defaults to os.Stdin.
// Without WithTerminal, PromptPassword disables echo only when r is an
// *os.File; other readers are read as plain lines.
func WithReader(r io.Reader) Option {
	return func(s *session) {
		s.src = r
		s.in = bufio.NewReader(r)
	}
}

// WithTerminal sets the terminal capability. By default it is derived
// from the configured writer and reader: output is interactive only when
// the writer is an *os.File attached to a terminal.
func WithTerminal(t Terminal) Option {
	return func(s *session) {
		s.term = t
	}
}

// WithColorMode sets the color behavior. Defaults to ColorModeAuto.
func WithColorMode(m ColorMode) Option {
	return func(s *session) {
		s.colorMode = m
	}
}

// WithCommandRunner sets the runner used by Clear.
func WithCommandRunner(r CommandRunner) Option {
	return func(s *session) {
		s.runner = r
	}
}

// WithPlatform overrides platform detection for Clear.
func WithPlatform(p Platform) Option {
	return func(s *session) {
		s.platform = p
	}
}

// WithLogger sets the diagnostic logger. Defaults to NewNopLogger().
func WithLogger(l *slog.Logger) Option {
	return func(s *session) {
		s.log = l
	}
}

// NewOutputManager returns a manager at indentation depth 0.
func NewOutputManager(verbose bool, opts ...Option) OutputManager {
	s := &session{
		colorMode: ColorModeAuto,
		platform:  DetectPlatform(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.out == nil {
		s.out = os.Stdout
	}
	if s.in == nil {
		s.src = os.Stdin
		s.in = bufio.NewReader(os.Stdin)
	}
	if s.term == nil {
		s.term = newTerminal(s.out, s.src, s.in)
	}
	if s.runner == nil {
		s.runner = &ExecRunner{Stdin: os.Stdin, Stdout: s.out, Stderr: os.Stderr}
	}
	if s.log == nil {
		s.log = NewNopLogger()
	}

	return OutputManager{verbose: verbose, s: s}
}

// Push returns a manager one indentation level deeper.
func (m OutputManager) Push() OutputManager {
	return OutputManager{verbose: m.verbose, depth: m.depth + 1, s: m.s}
}

// WithPadding returns a manager at the given indentation depth.
// Negative depths are clamped to 0.
func (m OutputManager) WithPadding(depth int) OutputManager {
	return OutputManager{verbose: m.verbose, depth: max(depth, 0), s: m.s}
}

// Verbose reports whether debug output is enabled.
func (m OutputManager) Verbose() bool {
	return m.verbose
}

// Depth returns the indentation depth.
func (m OutputManager) Depth() int {
	return m.depth
}

// Step displays msg in yellow, prefixed by '+'.
func (m OutputManager) Step(msg string) {
	_ = m.print(channelStep, msg, true)
}

// Success displays msg in green, prefixed by '+'.
func (m OutputManager) Success(msg string) {
	_ = m.print(channelSuccess, msg, true)
}

// Progress displays msg in the default color without a marker.
func (m OutputManager) Progress(msg string) {
	_ = m.print(channelProgress, msg, true)
}

// Debug displays msg in blue, prefixed by '-'.
// Nothing is written unless the manager is verbose.
func (m OutputManager) Debug(msg string) {
	_ = m.print(channelDebug, msg, true)
}

// Error displays msg in red, prefixed by '!'.
func (m OutputManager) Error(msg string) {
	_ = m.print(channelError, msg, true)
}

// Prompt displays msg prefixed by '?' and returns the next input line,
// trimmed of surrounding whitespace.
func (m OutputManager) Prompt(msg string) (string, error) {
	if err := m.ask(msg); err != nil {
		return "", err
	}
	line, err := m.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptYesNo displays msg with a [Y/n] or [y/N] hint and returns the answer.
// Only an explicit "n" (default true) or "y" (default false) overrides def;
// matching is case-insensitive.
func (m OutputManager) PromptYesNo(msg string, def bool) (bool, error) {
	hint := " [y/N] - "
	if def {
		hint = " [Y/n] - "
	}
	if err := m.ask(msg + hint); err != nil {
		return false, err
	}
	line, err := m.readLine()
	if err != nil {
		return false, err
	}

	pick := strings.ToLower(strings.TrimSpace(line))
	if def {
		return pick != "n", nil
	}
	return pick == "y", nil
}

// PromptPassword displays msg prefixed by '?' and reads input with echo
// disabled. The entered text is returned as typed.
// With a file reader the echo-free read bypasses the buffer Prompt reads through.
func (m OutputManager) PromptPassword(msg string) (string, error) {
	if err := m.ask(msg); err != nil {
		return "", err
	}
	password, err := m.s.term.ReadPassword()
	if err != nil {
		return "", IOError(err)
	}
	// The user's Enter is not echoed.
	if m.s.term.IsInteractive() {
		_, _ = io.WriteString(m.s.out, "\n")
	}
	return password, nil
}

// Clear clears the terminal screen using the platform's native command.
func (m OutputManager) Clear(ctx context.Context) error {
	argv, ok := clearCommands[m.s.platform]
	if !ok {
		return GeneralError("Unsupported platform")
	}
	return runCommand(ctx, m.s.runner, m.s.log, LogCategoryClear, argv, "Failed to clear the terminal")
}

var clearCommands = map[Platform][]string{
	PlatformLinux:   {"clear"},
	PlatformDarwin:  {"clear"},
	PlatformWindows: {"cmd", "/c", "cls"},
}

// print renders msg on ch. Interactive output gets padding, marker and
// color; redirected output gets the bare message.
func (m OutputManager) print(ch channel, msg string, newline bool) error {
	if ch.verboseOnly && !m.verbose {
		return nil
	}

	var sb strings.Builder
	if interactive := m.s.term.IsInteractive(); interactive {
		sb.WriteString(Padding(m.depth))
		sb.WriteString(ch.marker)
		sb.WriteString(" ")
		sb.WriteString(ch.paint(msg, m.s.colorMode.enabled(interactive)))
	} else {
		sb.WriteString(msg)
	}
	if newline {
		sb.WriteString("\n")
	}

	_, err := io.WriteString(m.s.out, sb.String())
	return err
}

// ask writes a same-line question and flushes it before a blocking read.
func (m OutputManager) ask(msg string) error {
	if err := m.print(channelQuestion, msg, false); err != nil {
		return IOError(err)
	}
	if f, ok := m.s.out.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return IOError(err)
		}
	}
	return nil
}

// readLine blocks until a full line is read. A final line without a
// trailing newline is accepted; EOF with no data is an error.
func (m OutputManager) readLine() (string, error) {
	line, err := m.s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		return "", IOError(err)
	}
	return line, nil
}
