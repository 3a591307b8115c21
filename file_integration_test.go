//go:build integration

package rood

import (
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/708u/rood/internal/testutil"
)

func TestFiles_Integration(t *testing.T) {
	t.Parallel()

	t.Run("EnsureExists", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		existing := testutil.WriteFile(t, dir, "present.txt", "x", 0644)
		files := NewDefaultFiles(PlatformLinux, nil)

		if err := files.EnsureExists(existing); err != nil {
			t.Errorf("EnsureExists(existing) error: %v", err)
		}
		if err := files.EnsureExists(dir); err != nil {
			t.Errorf("EnsureExists(dir) error: %v", err)
		}

		missing := filepath.Join(dir, "absent.txt")
		err := files.EnsureExists(missing)
		if cause, _ := CauseOf(err); cause != CauseNotFound {
			t.Fatalf("EnsureExists(missing) = %v, want NotFound", err)
		}
	})

	t.Run("MakeExecutable", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name     string
			perm     fs.FileMode
			wantPerm fs.FileMode
		}{
			{"owner_only", 0600, 0711},
			{"readable", 0644, 0755},
			{"already_executable", 0755, 0755},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				path := testutil.WriteFile(t, t.TempDir(), "script.sh", "#!/bin/sh\n", tt.perm)
				files := NewDefaultFiles(PlatformLinux, nil)

				if err := files.MakeExecutable(path); err != nil {
					t.Fatalf("MakeExecutable() error: %v", err)
				}

				info, err := os.Stat(path)
				if err != nil {
					t.Fatal(err)
				}
				if got := info.Mode().Perm(); got != tt.wantPerm {
					t.Errorf("mode = %v, want %v", got, tt.wantPerm)
				}

				ok, err := files.IsExecutable(path)
				if err != nil {
					t.Fatal(err)
				}
				if !ok {
					t.Error("IsExecutable() = false after MakeExecutable")
				}
			})
		}
	})

	t.Run("ReplaceAllKeepsMode", func(t *testing.T) {
		t.Parallel()

		path := testutil.WriteFile(t, t.TempDir(), "file.txt", "version = {{VERSION}}\n", 0640)

		changed, err := NewDefaultFiles(PlatformLinux, nil).ReplaceAll(path, "{{VERSION}}", "1.2.0")
		if err != nil {
			t.Fatalf("ReplaceAll() error: %v", err)
		}
		if !changed {
			t.Error("changed = false, want true")
		}
		if got := testutil.ReadFile(t, path); got != "version = 1.2.0\n" {
			t.Errorf("content = %q", got)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0640 {
			t.Errorf("mode = %v, want 0640", info.Mode().Perm())
		}
	})

	t.Run("ReplaceAllMissingFile", func(t *testing.T) {
		t.Parallel()

		_, err := NewDefaultFiles(PlatformLinux, nil).ReplaceAll(filepath.Join(t.TempDir(), "nope"), "a", "b")
		if cause, _ := CauseOf(err); cause != CauseNotFound {
			t.Errorf("error = %v, want NotFound", err)
		}
	})

	t.Run("ReplaceAllGlob", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		testutil.WriteFile(t, dir, "a.txt", "name: OLD", 0644)
		testutil.WriteFile(t, dir, "nested/deep/b.txt", "OLD OLD", 0644)
		testutil.WriteFile(t, dir, "nested/c.txt", "nothing here", 0644)
		testutil.WriteFile(t, dir, "d.md", "OLD", 0644)

		changed, err := NewDefaultFiles(PlatformLinux, nil).ReplaceAllGlob(dir, "**/*.txt", "OLD", "NEW")
		if err != nil {
			t.Fatalf("ReplaceAllGlob() error: %v", err)
		}
		slices.Sort(changed)

		want := []string{
			filepath.Join(dir, "a.txt"),
			filepath.Join(dir, "nested/deep/b.txt"),
		}
		if !reflect.DeepEqual(changed, want) {
			t.Errorf("changed = %v, want %v", changed, want)
		}
		if got := testutil.ReadFile(t, filepath.Join(dir, "nested/deep/b.txt")); got != "NEW NEW" {
			t.Errorf("b.txt = %q, want %q", got, "NEW NEW")
		}
		if got := testutil.ReadFile(t, filepath.Join(dir, "d.md")); got != "OLD" {
			t.Errorf("d.md should not match the glob, got %q", got)
		}
	})

	t.Run("ReplaceAllGlobInvalidPattern", func(t *testing.T) {
		t.Parallel()

		_, err := NewDefaultFiles(PlatformLinux, nil).ReplaceAllGlob(t.TempDir(), "[", "a", "b")
		if cause, _ := CauseOf(err); cause != CauseInvalidData {
			t.Errorf("error = %v, want InvalidData", err)
		}
	})
}
