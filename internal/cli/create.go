package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agentx-labs/create-lit-component/internal/branding"
	"github.com/agentx-labs/create-lit-component/internal/config"
	"github.com/agentx-labs/create-lit-component/internal/elementname"
	"github.com/agentx-labs/create-lit-component/internal/logging"
	"github.com/agentx-labs/create-lit-component/internal/options"
	"github.com/agentx-labs/create-lit-component/internal/output"
	"github.com/agentx-labs/create-lit-component/internal/prompt"
	"github.com/agentx-labs/create-lit-component/internal/runtime"
	"github.com/agentx-labs/create-lit-component/internal/scaffold"
	"github.com/agentx-labs/create-lit-component/internal/userdata"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// createFlags are the root command flags.
type createFlags struct {
	scope          string
	name           string
	description    string
	install        bool
	noInstall      bool
	silent         bool
	packageManager string
	template       string
	verbose        bool
}

func (f *createFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.scope, "scope", "s", "", "Scope for the npm package")
	fl.StringVarP(&f.name, "name", "n", "", "Component name (a valid custom element name, e.g. my-card)")
	fl.StringVarP(&f.description, "description", "d", "", "Component description")
	fl.BoolVarP(&f.install, "install", "i", true, "Install dependencies after generating")
	fl.BoolVar(&f.noInstall, "no-install", false, "Skip installing dependencies")
	fl.BoolVar(&f.silent, "silent", false, "Hide package manager output")
	fl.StringVar(&f.packageManager, "package-manager", "", "Package manager to install with ("+strings.Join(runtime.Supported(), "|")+")")
	fl.StringVar(&f.template, "template", "", "Use a template directory instead of the built-in one")
	cmd.PersistentFlags().BoolVar(&f.verbose, "verbose", false, "Enable debug logging")
	cmd.MarkFlagsMutuallyExclusive("install", "no-install")
}

// flagOptions maps flag names to option keys.
var flagOptions = map[string]string{
	"scope":           options.Scope,
	"name":            options.Name,
	"description":     options.Description,
	"install":         options.Install,
	"silent":          options.Silent,
	"package-manager": options.PackageManager,
	"template":        options.Template,
}

// explicitOptions returns the options whose flags were set on the command
// line. Values are taken as given.
func explicitOptions(flags *pflag.FlagSet, f *createFlags) options.Set {
	set := options.Set{}
	flags.Visit(func(fl *pflag.Flag) {
		if fl.Name == "no-install" {
			set[options.Install] = !f.noInstall
			return
		}
		key, ok := flagOptions[fl.Name]
		if !ok {
			return
		}
		switch fl.Name {
		case "install":
			set[key] = f.install
		case "silent":
			set[key] = f.silent
		default:
			set[key] = fl.Value.String()
		}
	})
	return set
}

func runCreate(cmd *cobra.Command, app *App, f *createFlags) error {
	ctx := cmd.Context()
	out := output.New(cmd.OutOrStdout())
	logger := logging.New(logging.Config{Verbose: f.verbose, Output: cmd.ErrOrStderr()})
	command := branding.CLIName()

	cwd, err := app.workDir()
	if err != nil {
		return err
	}

	flagSet := explicitOptions(cmd.Flags(), f)
	if t, ok := flagSet.String(options.Template); ok && t != "" && !filepath.IsAbs(t) {
		flagSet[options.Template] = filepath.Join(cwd, t)
	}

	cfg, err := config.Load(command, cwd)
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		logger.Debug("loaded config file", "path", cfg.Path, "keys", cfg.Options.Keys())
	}

	env, err := config.Environment()
	if err != nil {
		return err
	}

	sources := []options.Source{
		{Name: "defaults", Values: options.Defaults()},
		{Name: "config", Values: cfg.Options},
		{Name: "environment", Values: env},
		{Name: "flags", Values: flagSet},
	}
	merged := options.Merge(sources...)
	logProvenance(logger, options.Provenance(sources...))

	// An explicitly supplied name is checked before anything interactive.
	if name, ok := merged.String(options.Name); ok {
		if err := elementname.Validate(name); err != nil {
			return err
		}
	}

	pm, err := runtime.Lookup(stringOption(merged, options.PackageManager))
	if err != nil {
		return err
	}

	store, err := app.store()
	if err != nil {
		return err
	}
	prefs, err := userdata.LoadPreferences(store, command)
	if err != nil {
		return err
	}
	logger.Debug("loaded preferences", "scope", prefs.Scope, "useScope", prefs.UseScope)

	resolver := &prompt.Resolver{Prompter: app.prompter()}
	resolved, err := resolver.Resolve(ctx, merged, prefs)
	if errors.Is(err, prompt.ErrCancelled) {
		out.Info("Cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	name := stringOption(resolved, options.Name)
	for _, w := range elementname.Warnings(name) {
		out.Warn("%s", w)
	}

	saved, err := userdata.SavePreferences(store, command, resolved)
	if err != nil {
		return err
	}
	logger.Debug("saved preferences", "written", saved)

	src, err := templateSource(resolved)
	if err != nil {
		return err
	}

	vars := scaffold.NewVariables(resolved)
	dest := filepath.Join(cwd, name)
	result, err := scaffold.Materialize(src, dest, vars)
	if err != nil {
		if errors.Is(err, scaffold.ErrDestinationExists) {
			return fmt.Errorf("cannot create %s in %s: %w", vars.PkgName, dest, scaffold.ErrDestinationExists)
		}
		return err
	}
	for _, removed := range result.Removed {
		logger.Debug("removed submodule marker", "path", removed)
	}
	out.Success("Created %s in %s (%d files)", vars.PkgName, dest, len(result.Files))

	install, _ := resolved.Bool(options.Install)
	if !install {
		out.Info("Dependencies were not installed. Next steps:")
		out.Step("cd %s", name)
		out.Step("%s install", pm.Name)
		return nil
	}

	silent, _ := resolved.Bool(options.Silent)
	installer := app.Installer
	if installer == nil {
		ri := runtime.NewInstaller(cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
		ri.Spinner = silent && isTerminal(cmd.ErrOrStderr())
		installer = ri
	}

	if _, err := installer.CheckVersion(ctx, pm); err != nil {
		logger.Warn("package manager version check failed", "error", err)
	}

	res, err := installer.Install(ctx, pm, dest, silent)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		logger.Warn("package manager exited with a non-zero status", "command", pm.Name+" install", "exit_code", res.ExitCode)
		out.Warn("%s install exited with code %d", pm.Name, res.ExitCode)
	}

	out.Success("Done. Your component is ready:")
	out.Step("cd %s", name)
	out.Step("%s start", pm.Name)
	return nil
}

func templateSource(opts options.Set) (fs.FS, error) {
	if dir := stringOption(opts, options.Template); dir != "" {
		return scaffold.TemplateFromDir(dir)
	}
	return scaffold.DefaultTemplate(), nil
}

func stringOption(opts options.Set, key string) string {
	s, _ := opts.String(key)
	return s
}

func logProvenance(logger *slog.Logger, provenance map[string]string) {
	keys := make([]string, 0, len(provenance))
	for k := range provenance {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		logger.Debug("option source", "key", key, "source", provenance[key])
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && output.IsTerminal(f)
}
