package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Masterminds/semver/v3"
	"github.com/agentx-labs/create-lit-component/internal/branding"
	"github.com/agentx-labs/create-lit-component/internal/output"
	"github.com/agentx-labs/create-lit-component/internal/prompt"
	"github.com/agentx-labs/create-lit-component/internal/runtime"
	"github.com/agentx-labs/create-lit-component/internal/userdata"
	"github.com/spf13/cobra"
)

// Installer runs the package manager in a generated component.
type Installer interface {
	Install(ctx context.Context, pm runtime.PackageManager, dir string, silent bool) (*runtime.Output, error)
	CheckVersion(ctx context.Context, pm runtime.PackageManager) (*semver.Version, error)
}

// App carries the process dependencies of the command tree. Zero fields fall
// back to the real process: os streams, the working directory, the default
// preferences file and a terminal prompter.
type App struct {
	Version string
	Commit  string
	Date    string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	WorkDir   string
	Store     userdata.Store
	Prompter  prompt.Prompter
	Installer Installer
}

func (a *App) stdin() io.Reader {
	if a.Stdin == nil {
		return os.Stdin
	}
	return a.Stdin
}

func (a *App) stdout() io.Writer {
	if a.Stdout == nil {
		return os.Stdout
	}
	return a.Stdout
}

func (a *App) stderr() io.Writer {
	if a.Stderr == nil {
		return os.Stderr
	}
	return a.Stderr
}

func (a *App) workDir() (string, error) {
	if a.WorkDir != "" {
		return a.WorkDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return wd, nil
}

func (a *App) store() (userdata.Store, error) {
	if a.Store != nil {
		return a.Store, nil
	}
	s, err := userdata.OpenDefaultStore()
	if err != nil {
		return nil, fmt.Errorf("opening preferences: %w", err)
	}
	return s, nil
}

func (a *App) prompter() prompt.Prompter {
	if a.Prompter != nil {
		return a.Prompter
	}
	return prompt.NewTerminalPrompter(a.stdin(), a.stderr())
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	f := &createFlags{}

	rootCmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` scaffolds a new web component package from a template.

Options missing from flags, environment variables and config files
(.` + branding.CLIName() + `rc, ` + branding.CLIName() + `.config.json, a "` + branding.CLIName() + `" key in
package.json) are asked for interactively. The last scope used is remembered
and offered as the default next time.`,
		Version:       app.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, app, f)
		},
	}
	rootCmd.SetIn(app.stdin())
	rootCmd.SetOut(app.stdout())
	rootCmd.SetErr(app.stderr())
	rootCmd.SetVersionTemplate(fmt.Sprintf("%s version {{.Version}} (commit: %s, built: %s)\n", branding.CLIName(), app.Commit, app.Date))

	f.register(rootCmd)

	rootCmd.AddCommand(newVersionCmd(app))
	rootCmd.AddCommand(newPreferencesCmd(app))
	return rootCmd
}

// Execute runs the root command with build info injected via ldflags.
// An interrupt cancels the command context.
func Execute(version, commit, date string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &App{Version: version, Commit: commit, Date: date}
	return NewRootCommand(app).ExecuteContext(ctx)
}

// ReportError prints err for the user.
func ReportError(w io.Writer, err error) {
	output.New(w).Error("%v", err)
}
