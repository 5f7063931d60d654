package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the long-lived Halo session",
	}

	cmd.AddCommand(newSessionSetupCmd(app))
	return cmd
}

func newSessionSetupCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create a long-lived session from the current tokens and store its cookies",
		Long:  "setup signs in with the stored authToken/contextToken, keeps the session cookies, and saves the canonical tokens. Run it once, and again when the session expires (about 30 days).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := app.sessions.SetupSession(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, result)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	return cmd
}
