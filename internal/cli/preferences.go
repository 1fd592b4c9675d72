package cli

import (
	"fmt"

	"github.com/agentx-labs/create-lit-component/internal/branding"
	"github.com/agentx-labs/create-lit-component/internal/output"
	"github.com/agentx-labs/create-lit-component/internal/userdata"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

func newPreferencesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preferences",
		Short: "Show or clear remembered answers",
		Long: `The scope chosen in the last run is remembered and offered as the default
the next time. Set ` + branding.EnvVar("CONFIG_DIR") + ` to keep preferences somewhere
other than the user config directory.`,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the stored preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.store()
			if err != nil {
				return err
			}
			prefs, err := userdata.LoadPreferences(store, branding.CLIName())
			if err != nil {
				return err
			}
			if fs, ok := store.(*userdata.FileStore); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", fs.Path())
			}
			if prefs == (userdata.Preferences{}) {
				output.New(cmd.OutOrStdout()).Info("No preferences stored.")
				return nil
			}
			data, err := yaml.Marshal(prefs)
			if err != nil {
				return fmt.Errorf("encoding preferences: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget the stored preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.store()
			if err != nil {
				return err
			}
			if err := store.Delete(branding.CLIName()); err != nil {
				return fmt.Errorf("clearing preferences: %w", err)
			}
			output.New(cmd.OutOrStdout()).Success("Preferences cleared")
			return nil
		},
	})
	return cmd
}
