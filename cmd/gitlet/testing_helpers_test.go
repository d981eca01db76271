package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHelper runs gitlet commands inside a temporary working tree.
type TestHelper struct {
	t   *testing.T
	dir string
}

// Result is the outcome of one command line.
type Result struct {
	Code   int
	Stdout string
	Stderr string
}

// NewTestHelper creates an empty working tree and makes it the current
// directory for the rest of the test.
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return &TestHelper{t: t, dir: dir}
}

// Dir returns the working tree root.
func (th *TestHelper) Dir() string {
	return th.dir
}

// Run executes one command line and captures its output.
func (th *TestHelper) Run(args ...string) Result {
	th.t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return Result{Code: code, Stdout: stdout.String(), Stderr: stderr.String()}
}

// MustRun executes a command line that is expected to succeed.
func (th *TestHelper) MustRun(args ...string) string {
	th.t.Helper()
	res := th.Run(args...)
	require.Equal(th.t, 0, res.Code, "gitlet %s: %s", strings.Join(args, " "), res.Stderr)
	return res.Stdout
}

// InitRepo runs init in the working tree.
func (th *TestHelper) InitRepo(args ...string) {
	th.t.Helper()
	th.MustRun(append([]string{"init"}, args...)...)
}

// WriteFile creates or replaces a file below the working tree.
func (th *TestHelper) WriteFile(name, content string) {
	th.t.Helper()
	path := filepath.Join(th.dir, name)
	require.NoError(th.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(th.t, os.WriteFile(path, []byte(content), 0644))
}

// ReadFile returns a working file's contents.
func (th *TestHelper) ReadFile(name string) string {
	th.t.Helper()
	data, err := os.ReadFile(filepath.Join(th.dir, name))
	require.NoError(th.t, err)
	return string(data)
}

// Exists reports whether a working file exists.
func (th *TestHelper) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(th.dir, name))
	return err == nil
}

// Commit stages files and commits them with message.
func (th *TestHelper) Commit(message string, files map[string]string) {
	th.t.Helper()
	for name, content := range files {
		th.WriteFile(name, content)
		th.MustRun("add", name)
	}
	th.MustRun("commit", message)
}
