package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/abhisek/drillz/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "drillz",
	Short: "Preflop poker decision trainer",
	Long: `drillz runs timed preflop drills in the terminal. Clear a level's accuracy
threshold to unlock the next one and earn XP and diamonds along the way.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

// Execute runs the root command with a context cancelled on interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Database file (SQLite) or connection URL (overrides DRILLZ_DB)")
	pf.String("db-driver", "", "Database driver: sqlite, postgres or mysql (overrides DRILLZ_DB_DRIVER)")
	pf.String("user", "", "User id to play as (overrides DRILLZ_USER)")
	pf.String("content", "", "Content pack file or directory (overrides DRILLZ_CONTENT)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(claimCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(ledgerCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies any persistent flags that
// were set on the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	for name, dst := range map[string]*string{
		"db":        &cfg.DB,
		"db-driver": &cfg.DBDriver,
		"user":      &cfg.UserID,
		"content":   &cfg.Content,
	} {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	return cfg, cfg.Validate()
}
