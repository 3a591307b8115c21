package testutil

// MockTerminal is a mock implementation of rood.Terminal for testing.
type MockTerminal struct {
	Interactive      bool
	ReadPasswordFunc func() (string, error)
}

func (m *MockTerminal) IsInteractive() bool {
	return m.Interactive
}

func (m *MockTerminal) ReadPassword() (string, error) {
	if m.ReadPasswordFunc != nil {
		return m.ReadPasswordFunc()
	}
	return "", nil
}
