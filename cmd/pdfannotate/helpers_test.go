package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alnah/go-pdfannotate/internal/pdftest"
)

// testEnv returns an environment with the given variables and captured
// output. The TUI runner fails the test unless replaced.
func testEnv(t *testing.T, vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		RunProgram: func(context.Context, tea.Model) error {
			t.Error("unexpected TUI run")
			return nil
		},
	}
	return env, &stdout, &stderr
}

// writeFile writes data under dir and returns its path.
func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

// writeDoc writes a two-page 200x100 document.
func writeDoc(t *testing.T, dir string) string {
	t.Helper()
	return writeFile(t, dir, "doc.pdf", pdftest.Document(t, 2, 200, 100))
}
