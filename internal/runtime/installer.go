package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Installer runs package-manager commands.
type Installer struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger

	// Spinner shows a progress spinner on stderr during silent installs.
	Spinner bool

	// For mocking in tests
	commandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewInstaller returns an installer writing to stdout and stderr. Nil writers
// default to the process streams; a nil logger discards.
func NewInstaller(stdout, stderr io.Writer, logger *slog.Logger) *Installer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Installer{
		stdout:      stdout,
		stderr:      stderr,
		logger:      logger,
		commandFunc: exec.CommandContext,
	}
}

// Install runs `<pm> install` in dir. In silent mode the output is captured
// but not shown. A non-zero exit is reported through Output.ExitCode, not as
// an error; an error means the package manager could not be run at all.
func (i *Installer) Install(ctx context.Context, pm PackageManager, dir string, silent bool) (*Output, error) {
	cmd := i.commandFunc(ctx, pm.Name, "install")
	cmd.Dir = dir

	var stdoutBuf, stderrBuf bytes.Buffer
	if silent {
		cmd.Stdout = &stdoutBuf
		cmd.Stderr = &stderrBuf
	} else {
		cmd.Stdout = io.MultiWriter(i.stdout, &stdoutBuf)
		cmd.Stderr = io.MultiWriter(i.stderr, &stderrBuf)
	}

	i.logger.Debug("running package manager", "command", pm.Name+" install", "dir", dir, "silent", silent)

	var err error
	if silent && i.Spinner {
		err = i.withSpinner(fmt.Sprintf("Installing dependencies with %s", pm.Name), cmd.Run)
	} else {
		err = cmd.Run()
	}

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			i.logger.Debug("package manager exited", "command", pm.Name, "exit_code", output.ExitCode)
			return output, nil
		}
		if errors.Is(err, exec.ErrNotFound) {
			return output, fmt.Errorf("package manager %q not found on PATH: %w", pm.Name, err)
		}
		if ctx.Err() != nil {
			return output, fmt.Errorf("%s install cancelled: %w", pm.Name, ctx.Err())
		}
		return output, fmt.Errorf("running %s install: %w", pm.Name, err)
	}

	return output, nil
}

// CheckVersion runs `<pm> --version` and checks the result against
// pm.MinVersion. It returns the detected version; the error describes a
// version that could not be read or is too old.
func (i *Installer) CheckVersion(ctx context.Context, pm PackageManager) (*semver.Version, error) {
	var out bytes.Buffer
	cmd := i.commandFunc(ctx, pm.Name, "--version")
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("reading %s version: %w", pm.Name, err)
	}

	raw := strings.TrimSpace(out.String())
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s version %q: %w", pm.Name, raw, err)
	}

	constraint, err := semver.NewConstraint(pm.MinVersion)
	if err != nil {
		return v, fmt.Errorf("invalid version constraint %q: %w", pm.MinVersion, err)
	}
	if !constraint.Check(v) {
		return v, fmt.Errorf("%s %s does not satisfy %s", pm.Name, v, pm.MinVersion)
	}

	i.logger.Debug("package manager version", "command", pm.Name, "version", v.String())
	return v, nil
}
