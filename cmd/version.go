package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/abhisek/drillz/internal/rewards"
	"github.com/abhisek/drillz/internal/scenario"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		v := version
		if v == "(devel)" {
			if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
				v = info.Main.Version
			}
		}
		fmt.Println("drillz", v)
		fmt.Println("  content pack format:", scenario.PackFormatVersion)
		fmt.Println("  ledger export format:", rewards.ExportFormatVersion)
	},
}
