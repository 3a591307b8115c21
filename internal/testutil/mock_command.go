package testutil

import (
	"context"
	"fmt"
)

// MockCommandRunner is a mock implementation of rood.CommandRunner for testing.
// Every invocation is recorded in Calls as name followed by args.
type MockCommandRunner struct {
	RunFunc func(name string, args ...string) error
	Calls   [][]string
}

func (m *MockCommandRunner) Run(_ context.Context, name string, args ...string) error {
	m.Calls = append(m.Calls, append([]string{name}, args...))
	if m.RunFunc != nil {
		return m.RunFunc(name, args...)
	}
	return nil
}

// ExitError mimics *exec.ExitError for a command that exited non-zero.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }
func (e *ExitError) ExitCode() int { return e.Code }
