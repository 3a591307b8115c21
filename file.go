package rood

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
)

// execBits are the user, group and other execute permission bits.
const execBits = 0o111

// Files provides file helpers that honor the platform's permission model.
type Files struct {
	FS       FileSystem
	Platform Platform
	Log      *slog.Logger
}

// NewFiles creates Files with explicit dependencies (for testing).
func NewFiles(fs FileSystem, platform Platform, log *slog.Logger) *Files {
	if log == nil {
		log = NewNopLogger()
	}
	return &Files{FS: fs, Platform: platform, Log: log}
}

// NewDefaultFiles creates Files over the real filesystem.
func NewDefaultFiles(platform Platform, log *slog.Logger) *Files {
	return NewFiles(osFS{}, platform, log)
}

// EnsureExists fails with CauseNotFound when path does not exist.
func (f *Files) EnsureExists(path string) error {
	if _, err := f.FS.Stat(path); err != nil {
		if f.FS.IsNotExist(err) {
			return NewError(CauseNotFound, fmt.Sprintf("Path [%s] does not exist", path))
		}
		return IOError(err)
	}
	return nil
}

// MakeExecutable adds the execute bits to path's mode.
// It is a no-op on platforms without POSIX permissions.
func (f *Files) MakeExecutable(path string) error {
	if !f.Platform.IsPOSIX() {
		return nil
	}

	info, err := f.FS.Stat(path)
	if err != nil {
		return f.statError(path, err)
	}
	mode := info.Mode().Perm()
	if mode&execBits == execBits {
		return nil
	}

	if err := f.FS.Chmod(path, mode|execBits); err != nil {
		return IOError(err)
	}
	f.Log.Debug("chmod +x "+path, LogAttrKeyCategory.Attr(LogCategoryFile),
		slog.String("mode", (mode|execBits).String()))
	return nil
}

// IsExecutable reports whether any execute bit is set on path.
// On platforms without POSIX permissions it always reports true.
func (f *Files) IsExecutable(path string) (bool, error) {
	if !f.Platform.IsPOSIX() {
		return true, nil
	}
	info, err := f.FS.Stat(path)
	if err != nil {
		return false, f.statError(path, err)
	}
	return info.Mode().Perm()&execBits != 0, nil
}

// ReplaceAll replaces every literal occurrence of pattern in the file at
// path with replacement and rewrites the file with its original mode.
// It reports whether the file content changed.
func (f *Files) ReplaceAll(path, pattern, replacement string) (bool, error) {
	if pattern == "" {
		return false, NewError(CauseInvalidData, "replace pattern must not be empty")
	}

	info, err := f.FS.Stat(path)
	if err != nil {
		return false, f.statError(path, err)
	}
	content, err := f.FS.ReadFile(path)
	if err != nil {
		return false, IOError(err)
	}

	replaced := bytes.ReplaceAll(content, []byte(pattern), []byte(replacement))
	if bytes.Equal(replaced, content) {
		return false, nil
	}

	if err := f.FS.WriteFile(path, replaced, info.Mode().Perm()); err != nil {
		return false, IOError(err)
	}
	f.Log.Debug("rewrote "+path, LogAttrKeyCategory.Attr(LogCategoryFile),
		slog.Int("occurrences", bytes.Count(content, []byte(pattern))))
	return true, nil
}

// ReplaceAllGlob applies ReplaceAll to every file under dir matching the
// doublestar pattern glob. It returns the paths of the files that changed.
func (f *Files) ReplaceAllGlob(dir, glob, pattern, replacement string) ([]string, error) {
	if pattern == "" {
		return nil, NewError(CauseInvalidData, "replace pattern must not be empty")
	}
	matches, err := f.FS.Glob(dir, glob)
	if err != nil {
		return nil, NewError(CauseInvalidData, fmt.Sprintf("invalid glob pattern %s: %v", glob, err))
	}

	var changed []string
	for _, match := range matches {
		path := filepath.Join(dir, match)
		ok, err := f.ReplaceAll(path, pattern, replacement)
		if err != nil {
			return changed, err
		}
		if ok {
			changed = append(changed, path)
		}
	}
	return changed, nil
}

func (f *Files) statError(path string, err error) error {
	if f.FS.IsNotExist(err) {
		return &Error{Cause: CauseNotFound, Message: fmt.Sprintf("Path [%s] does not exist", path), Err: err}
	}
	return IOError(err)
}
