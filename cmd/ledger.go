package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/drillz/internal/rewards"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect and export the reward ledger",
}

var ledgerExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the reward ledger as versioned JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("out")

		rt, err := openRuntime(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer rt.Close()

		exp, err := rt.trainer.ExportLedger(cmd.Context())
		if err != nil {
			return fmt.Errorf("export ledger: %w", err)
		}
		data, err := exp.Marshal()
		if err != nil {
			return fmt.Errorf("encode ledger: %w", err)
		}
		if path == "" || path == "-" {
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d claims to %s\n", len(exp.Claims), path)
		return nil
	},
}

var ledgerVerifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Check an exported ledger's version and totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		exp, err := rewards.ParseExport(raw)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "OK: %s, %d claims, ◆ %d, %d XP\n",
			exp.Version, len(exp.Claims), exp.Totals.Diamonds, exp.Totals.XP)
		return nil
	},
}

func init() {
	ledgerExportCmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
	ledgerCmd.AddCommand(ledgerExportCmd)
	ledgerCmd.AddCommand(ledgerVerifyCmd)
}
