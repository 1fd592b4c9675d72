// Package cli defines the Cobra command tree for create-lit-component. The
// root command generates a component; version and preferences are
// subcommands. Command implementations delegate to internal packages for
// the work and only handle flag parsing, output and user interaction.
package cli
