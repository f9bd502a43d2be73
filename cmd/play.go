package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the campaign map and start drilling",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("level")
		return runApp(cmd, level)
	},
}

func init() {
	playCmd.Flags().String("level", "", "Start this level immediately if it is unlocked")
}
