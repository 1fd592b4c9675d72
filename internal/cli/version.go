package cli

import (
	"encoding/json"
	"fmt"

	"github.com/agentx-labs/create-lit-component/internal/branding"
	"github.com/spf13/cobra"
)

func newVersionCmd(app *App) *cobra.Command {
	var (
		versionShort bool
		versionJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if versionShort {
				fmt.Fprintln(w, app.Version)
				return nil
			}

			if versionJSON {
				info := map[string]string{
					"version": app.Version,
					"commit":  app.Commit,
					"date":    app.Date,
				}
				out, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling version info: %w", err)
				}
				fmt.Fprintln(w, string(out))
				return nil
			}

			fmt.Fprintf(w, "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), app.Version, app.Commit, app.Date)
			return nil
		},
	}
	cmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	cmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	cmd.MarkFlagsMutuallyExclusive("short", "json")
	return cmd
}
