// Package testsupport holds helpers shared by the package tests.
package testsupport

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// UpdateEnv names the environment variable that makes Golden rewrite
// files instead of comparing against them.
const UpdateEnv = "UPDATE_GOLDENS"

// Golden compares got with the file at path.
func Golden(t *testing.T, path, got string) {
	t.Helper()

	if os.Getenv(UpdateEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("golden %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatalf("golden %s: %v", path, err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("golden %s: %v (run with %s=1 to create it)", path, err, UpdateEnv)
	}
	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", filepath.Base(path), diff)
	}
}

// Capture runs render with a buffer and fails the test if render errors or
// if what it returned differs from what it wrote.
func Capture(t *testing.T, render func(io.Writer) (string, error)) string {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff(out, buf.String()); diff != "" {
		t.Fatalf("written output differs from returned output (-returned +written):\n%s", diff)
	}
	return out
}
