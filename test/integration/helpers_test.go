//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/agentx-labs/create-lit-component/internal/cli"
)

// testEnv holds an isolated working directory and preferences location.
type testEnv struct {
	WorkDir   string // where components are generated
	ConfigDir string // CREATE_LIT_COMPONENT_CONFIG_DIR
	Stdout    bytes.Buffer
	Stderr    bytes.Buffer
}

// setupTestEnv creates isolated temp directories and points the preferences
// store at one of them. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		WorkDir:   t.TempDir(),
		ConfigDir: t.TempDir(),
	}
	t.Setenv("CREATE_LIT_COMPONENT_CONFIG_DIR", env.ConfigDir)
	for _, key := range []string{"NAME", "SCOPE", "DESCRIPTION", "INSTALL", "SILENT", "USESCOPE", "PACKAGEMANAGER", "TEMPLATE"} {
		t.Setenv("CREATE_LIT_COMPONENT_"+key, "")
	}
	return env
}

// run executes the command tree with args and stdin as the user's input.
func (e *testEnv) run(t *testing.T, stdin string, args ...string) error {
	t.Helper()
	e.Stdout.Reset()
	e.Stderr.Reset()

	cmd := cli.NewRootCommand(&cli.App{
		Version: "test",
		Stdin:   bytes.NewBufferString(stdin),
		Stdout:  &e.Stdout,
		Stderr:  &e.Stderr,
		WorkDir: e.WorkDir,
	})
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file %s to exist: %v", path, err)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected %s to not exist", path)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// fakePackageManager installs an executable named name on PATH that records
// its invocations in the working directory and exits with exitCode.
func fakePackageManager(t *testing.T, name string, exitCode int) {
	t.Helper()
	bin := t.TempDir()
	script := `#!/bin/sh
if [ "$1" = "--version" ]; then
  echo 10.1.0
  exit 0
fi
echo "$0 $*" > installed.txt
echo "added 42 packages"
exit ` + strconv.Itoa(exitCode) + "\n"
	if err := os.WriteFile(filepath.Join(bin, name), []byte(script), 0755); err != nil {
		t.Fatalf("writing fake %s: %v", name, err)
	}
	t.Setenv("PATH", bin)
}
