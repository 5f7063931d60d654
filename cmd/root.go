package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "halo",
		Short:         "Halo bridge (halo): manage Halo LMS sessions and assignment submissions",
		Long:          "halo keeps a long-lived Halo LMS session with automatic token refresh, lists enrolled classes, attaches files to assignments and submits them for grading. It can also serve the same operations as HTTP tools for agents.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		rootCmd.AddCommand(newVersionCmd())
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newSessionCmd(app),
		newTokensCmd(app),
		newClassesCmd(app),
		newSubmissionCmd(app),
		newServeCmd(app),
	)

	return rootCmd
}
