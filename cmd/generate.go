package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/drillz/internal/campaign"
	"github.com/abhisek/drillz/internal/llm"
	"github.com/abhisek/drillz/internal/scengen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate extra scenarios for levels with the configured LLM",
	Long: `Generate preflop scenarios with an LLM and store them in the scenario cache.

Cached scenarios are dealt alongside the built-in content. The provider is
selected with DRILLZ_LLM_PROVIDER and its API key variable; every request is
recorded in the event log (see "drillz llm list").`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringSlice("level", nil, "Level id to fill (repeatable; default every level)")
	generateCmd.Flags().Int("target", 40, "Number of cached scenarios to reach per level")
	generateCmd.Flags().StringSlice("focus", nil, "Categories to emphasize, e.g. open,3bet")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	levelIDs, _ := cmd.Flags().GetStringSlice("level")
	target, _ := cmd.Flags().GetInt("target")
	focus, _ := cmd.Flags().GetStringSlice("focus")
	if target <= 0 {
		return fmt.Errorf("target must be positive, got %d", target)
	}

	rt, err := openRuntime(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer rt.Close()
	ctx := cmd.Context()

	provider, llmCfg, err := llm.NewProviderFromEnv(ctx, rt.store, rt.log)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	levels := rt.trainer.Levels()
	if len(levelIDs) > 0 {
		levels = levels[:0:0]
		for _, id := range levelIDs {
			l, ok := campaign.LevelByID(rt.trainer.Levels(), id)
			if !ok {
				return fmt.Errorf("unknown level %q", id)
			}
			levels = append(levels, l)
		}
	}

	filler := scengen.NewFiller(scengen.New(provider, scengen.DefaultConfig()), rt.store, rt.log)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Provider: %s\n", llmCfg.Provider)
	fmt.Fprintf(out, "%-22s  %6s  %6s  %6s  %8s  %9s\n", "Level", "Before", "After", "Added", "Rejected", "Cost")
	fmt.Fprintln(out, strings.Repeat("─", 66))

	var total float64
	for _, l := range levels {
		rep, err := filler.Fill(ctx, l, target, focus)
		fmt.Fprintf(out, "%-22s  %6d  %6d  %6d  %8d  %9s\n",
			l.ID, rep.Before, rep.After, rep.Saved(), rep.Rejected, formatCost(rep.CostUSD))
		total += rep.CostUSD
		if err != nil {
			return fmt.Errorf("fill %s: %w", l.ID, err)
		}
	}
	fmt.Fprintln(out, strings.Repeat("─", 66))
	fmt.Fprintf(out, "%-22s  %6s  %6s  %6s  %8s  %9s\n", "TOTAL", "", "", "", "", formatCost(total))
	return nil
}
