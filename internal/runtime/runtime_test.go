package runtime

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCommand re-executes the test binary as a fake package manager.
func mockCommand(ctx context.Context, name string, args ...string) *exec.Cmd {
	cs := []string{"-test.run=TestHelperProcess", "--", name}
	cs = append(cs, args...)
	cmd := exec.CommandContext(ctx, os.Args[0], cs...)
	cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1")
	return cmd
}

// withVersion makes the fake package manager report version v.
func withVersion(v string) func(context.Context, string, ...string) *exec.Cmd {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := mockCommand(ctx, name, args...)
		cmd.Env = append(cmd.Env, "HELPER_VERSION="+v)
		return cmd
	}
}

// TestHelperProcess is the fake package manager.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}
	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: <pm> <command>\n")
		os.Exit(2)
	}

	switch args[1] {
	case "--version":
		fmt.Println(os.Getenv("HELPER_VERSION"))
		os.Exit(0)
	case "install":
		wd, _ := os.Getwd()
		fmt.Printf("%s install in %s\n", args[0], filepath.Base(wd))
		fmt.Fprintln(os.Stderr, "npm warn deprecated something")
		if _, err := os.Stat("fail"); err == nil {
			os.Exit(3)
		}
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[1])
		os.Exit(1)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{NPM, Yarn, PNPM} {
		pm, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, name, pm.Name)
		assert.NotEmpty(t, pm.MinVersion)
	}

	_, err := Lookup("bun")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "npm, pnpm, yarn")
}

func newTestInstaller(stdout, stderr *bytes.Buffer) *Installer {
	i := NewInstaller(stdout, stderr, nil)
	i.commandFunc = mockCommand
	return i
}

func TestInstallStreamsOutput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	i := newTestInstaller(&stdout, &stderr)
	dir := filepath.Join(t.TempDir(), "foo-bar")
	require.NoError(t, os.Mkdir(dir, 0755))

	out, err := i.Install(context.Background(), PackageManager{Name: NPM}, dir, false)
	require.NoError(t, err)
	assert.Equal(t, 0, out.ExitCode)
	assert.Contains(t, stdout.String(), "npm install in foo-bar")
	assert.Contains(t, stderr.String(), "deprecated")
	assert.Equal(t, stdout.String(), out.Stdout)
}

func TestInstallSilentDiscardsOutput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	i := newTestInstaller(&stdout, &stderr)
	dir := t.TempDir()

	out, err := i.Install(context.Background(), PackageManager{Name: Yarn}, dir, true)
	require.NoError(t, err)
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
	assert.Contains(t, out.Stdout, "yarn install")
}

func TestInstallNonZeroExit(t *testing.T) {
	var stdout, stderr bytes.Buffer
	i := newTestInstaller(&stdout, &stderr)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fail"), nil, 0644))

	out, err := i.Install(context.Background(), PackageManager{Name: NPM}, dir, true)
	require.NoError(t, err)
	assert.Equal(t, 3, out.ExitCode)
}

func TestInstallNotOnPath(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	i := NewInstaller(&bytes.Buffer{}, &bytes.Buffer{}, nil)

	_, err := i.Install(context.Background(), PackageManager{Name: PNPM}, t.TempDir(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, exec.ErrNotFound)
	assert.Contains(t, err.Error(), "not found on PATH")
}

func TestInstallCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	i := newTestInstaller(&bytes.Buffer{}, &bytes.Buffer{})

	_, err := i.Install(ctx, PackageManager{Name: NPM}, t.TempDir(), true)
	assert.Error(t, err)
}

func TestInstallWithSpinner(t *testing.T) {
	var stdout, stderr bytes.Buffer
	i := newTestInstaller(&stdout, &stderr)
	i.Spinner = true

	out, err := i.Install(context.Background(), PackageManager{Name: NPM}, t.TempDir(), true)
	require.NoError(t, err)
	assert.Equal(t, 0, out.ExitCode)
	assert.Empty(t, stdout.String())
	assert.NotContains(t, stderr.String(), "deprecated")
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		name    string
		pm      PackageManager
		version string
		wantErr string
	}{
		{name: "satisfied", pm: PackageManager{Name: NPM, MinVersion: ">= 7.0.0"}, version: "10.2.4"},
		{name: "v prefix", pm: PackageManager{Name: PNPM, MinVersion: ">= 8.0.0"}, version: "v9.1.0"},
		{name: "too old", pm: PackageManager{Name: Yarn, MinVersion: ">= 1.22.0"}, version: "1.10.1", wantErr: "does not satisfy"},
		{name: "unparseable", pm: PackageManager{Name: NPM, MinVersion: ">= 7.0.0"}, version: "latest", wantErr: "parsing npm version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := NewInstaller(&bytes.Buffer{}, &bytes.Buffer{}, nil)
			i.commandFunc = withVersion(tt.version)

			v, err := i.CheckVersion(context.Background(), tt.pm)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimPrefix(tt.version, "v"), v.String())
		})
	}
}

func TestSpinnerModel(t *testing.T) {
	m := newSpinnerModel("Installing")
	assert.Contains(t, m.View(), "Installing...")

	_, cmd := m.Update(spinnerDoneMsg{})
	assert.True(t, m.done)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, "✓ Installing\n", m.View())

	m = newSpinnerModel("Installing")
	m.Update(spinnerDoneMsg{err: fmt.Errorf("exit status 1")})
	assert.Equal(t, "✗ Installing\n", m.View())
}
