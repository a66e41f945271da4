package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "session-count [sessions_csv [users_json [output_csv]]]",
		Short:         "Report concurrent EaaSI sessions over time",
		Long:          "session-count reads an EaaSI session log CSV and a user directory JSON export, replays the session start/end events in time order, and writes a CSV report of how many sessions and which users were active at every change. Without arguments the latest sessions_*.csv and users_*.json in the search directory are used, and the report name is derived from the sessions file.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	configureReportCmd(rootCmd, app)
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
