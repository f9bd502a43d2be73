package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/drillz/internal/campaign"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List campaign levels with lock state and best accuracy",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer rt.Close()

		cards, err := rt.trainer.LevelCards(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-3s  %-22s  %-26s  %6s  %6s  %6s  %s\n",
			"#", "ID", "Name", "Need", "Best", "Plays", "State")
		fmt.Fprintln(out, strings.Repeat("─", 92))
		for i, c := range cards {
			best := "-"
			if c.Progress.TimesPlayed > 0 {
				best = fmt.Sprintf("%.0f%%", c.Progress.BestAccuracy*100)
			}
			fmt.Fprintf(out, "%-3d  %-22s  %-26s  %5.0f%%  %6s  %6d  %s\n",
				i, c.Level.ID, truncate(c.Level.Name, 26), c.Threshold*100, best,
				c.Progress.TimesPlayed, cardState(c))
		}
		fmt.Fprintf(out, "\n%d of %d levels mastered\n", campaign.CountMastered(cards), len(cards))
		return nil
	},
}

func cardState(c campaign.LevelCard) string {
	switch {
	case c.Mastered:
		return "mastered"
	case c.Unlocked:
		return "open"
	default:
		return "locked"
	}
}
