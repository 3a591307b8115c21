package testutil

import (
	"io/fs"
	"os"
)

// MockFS is a mock implementation of rood.FileSystem for testing.
// Nil funcs report success with zero values.
type MockFS struct {
	StatFunc      func(name string) (fs.FileInfo, error)
	ChmodFunc     func(name string, mode fs.FileMode) error
	ReadFileFunc  func(name string) ([]byte, error)
	WriteFileFunc func(name string, data []byte, perm fs.FileMode) error
	MkdirAllFunc  func(path string, perm fs.FileMode) error
	GlobFunc      func(dir, pattern string) ([]string, error)
}

func (m *MockFS) Stat(name string) (fs.FileInfo, error) {
	if m.StatFunc != nil {
		return m.StatFunc(name)
	}
	return nil, nil
}

func (m *MockFS) Chmod(name string, mode fs.FileMode) error {
	if m.ChmodFunc != nil {
		return m.ChmodFunc(name, mode)
	}
	return nil
}

func (m *MockFS) ReadFile(name string) ([]byte, error) {
	if m.ReadFileFunc != nil {
		return m.ReadFileFunc(name)
	}
	return nil, nil
}

func (m *MockFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if m.WriteFileFunc != nil {
		return m.WriteFileFunc(name, data, perm)
	}
	return nil
}

func (m *MockFS) MkdirAll(path string, perm fs.FileMode) error {
	if m.MkdirAllFunc != nil {
		return m.MkdirAllFunc(path, perm)
	}
	return nil
}

func (m *MockFS) IsNotExist(err error) bool {
	return os.IsNotExist(err)
}

func (m *MockFS) Glob(dir, pattern string) ([]string, error) {
	if m.GlobFunc != nil {
		return m.GlobFunc(dir, pattern)
	}
	return nil, nil
}
