package fileutil_test

// Notes:
// - WriteFileAtomic write, chmod and close error branches are not tested
//   because triggering disk failures is platform-specific.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-pdfannotate/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateName - Bare file name validation
// ---------------------------------------------------------------------------

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "plain name", input: "annotated.pdf"},
		{name: "hidden file", input: ".annotated.pdf"},
		{name: "empty", input: "", wantErr: fileutil.ErrNameEmpty},
		{name: "dot", input: ".", wantErr: fileutil.ErrNameEmpty},
		{name: "dot dot", input: "..", wantErr: fileutil.ErrNameEmpty},
		{name: "forward slash", input: "../etc/passwd", wantErr: fileutil.ErrNamePathTraversal},
		{name: "backslash", input: "..\\windows", wantErr: fileutil.ErrNamePathTraversal},
		{name: "null byte", input: "a\x00.pdf", wantErr: fileutil.ErrNamePathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Atomic writes leave no temp files behind
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "annotated.pdf")
		if err := fileutil.WriteFileAtomic(path, []byte("%PDF-1.7"), 0o644); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "%PDF-1.7" {
			t.Errorf("content = %q, want %q", got, "%PDF-1.7")
		}
		assertOnlyFile(t, dir, "annotated.pdf")
	})

	t.Run("replaces existing file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.pdf")
		if err := os.WriteFile(path, []byte("old content that is longer"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := fileutil.WriteFileAtomic(path, []byte("new"), 0o644); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, _ := os.ReadFile(path)
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}
		assertOnlyFile(t, dir, "out.pdf")
	})

	t.Run("missing directory fails without residue", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		err := fileutil.WriteFileAtomic(filepath.Join(dir, "missing", "out.pdf"), []byte("x"), 0o644)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "creating temp file") {
			t.Errorf("error = %q, want containing %q", err, "creating temp file")
		}
		entries, _ := os.ReadDir(dir)
		if len(entries) != 0 {
			t.Errorf("directory has %d entries, want 0", len(entries))
		}
	})

	t.Run("rename onto directory cleans temp file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		target := filepath.Join(dir, "taken")
		if err := os.Mkdir(target, 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(target, "keep"), nil, 0o600); err != nil {
			t.Fatal(err)
		}
		if err := fileutil.WriteFileAtomic(target, []byte("x"), 0o644); err == nil {
			t.Fatal("expected error, got nil")
		}
		assertOnlyFile(t, dir, "taken")
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		err := fileutil.WriteFileAtomic(t.TempDir()+string(filepath.Separator), []byte("x"), 0o644)
		if !errors.Is(err, fileutil.ErrNameEmpty) {
			t.Errorf("errors.Is(err, ErrNameEmpty) = false, got: %v", err)
		}
	})
}

func assertOnlyFile(t *testing.T, dir, name string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != name {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory entries = %v, want [%s]", names, name)
	}
}

// ---------------------------------------------------------------------------
// TestEnsureDir - Output directory creation
// ---------------------------------------------------------------------------

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := fileutil.EnsureDir(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}
	if err := fileutil.EnsureDir(dir); err != nil {
		t.Errorf("second call: unexpected error: %v", err)
	}
	if err := fileutil.EnsureDir(""); err != nil {
		t.Errorf("empty dir: unexpected error: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestFileExists - Regular file detection
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "existing file", path: file, want: true},
		{name: "directory", path: dir, want: false},
		{name: "missing", path: filepath.Join(dir, "nope.pdf"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath - Names versus paths
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"work", false},
		{"my-config", false},
		{"./work.yaml", true},
		{"/etc/pdfannotate.yaml", true},
		{`C:\cfg\work.yaml`, true},
		{"sub/dir", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
