package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gc",
		Short:         "outthegc CLI (gc): plan group trips from the terminal",
		Long:          "gc is the terminal client for the outthegc trip planner: create or join a trip, submit availability and preferences, vote in polls, and watch AI-generated itinerary options.",
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

	rootCmd.AddCommand(
		newVersionCmd(),
		newTripCmd(app),
		newPollCmd(app),
		newOptionsCmd(app),
		newMeCmd(app),
		newWatchCmd(app),
	)

	return rootCmd
}
