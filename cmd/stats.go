package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/drillz/internal/drill"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show training statistics and reward balances",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer rt.Close()
		ctx := cmd.Context()

		st, err := rt.store.SessionStats(ctx, rt.cfg.UserID)
		if err != nil {
			return err
		}
		sum, err := rt.trainer.Summary(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		sep := strings.Repeat("─", 40)
		fmt.Fprintf(out, "Player: %s\n%s\n", rt.cfg.UserID, sep)
		fmt.Fprintf(out, "Sessions:        %d (%d passed)\n", st.Sessions, st.Passed)
		accuracy := 0.0
		if st.Answered > 0 {
			accuracy = float64(st.Correct) / float64(st.Answered) * 100
		}
		fmt.Fprintf(out, "Hands answered:  %d (%.0f%% correct)\n", st.Answered, accuracy)
		if !st.LastPlayedAt.IsZero() {
			fmt.Fprintf(out, "Last played:     %s\n", st.LastPlayedAt.Local().Format("2006-01-02 15:04"))
		}
		fmt.Fprintln(out, sep)
		fmt.Fprintf(out, "XP:              %d\n", sum.TotalXP)
		fmt.Fprintf(out, "Diamonds:        ◆ %d\n", sum.TotalLifetime)
		fmt.Fprintf(out, "Earned today:    %d (%d left)\n", sum.EarnedToday, sum.RemainingCapToday)
		fmt.Fprintf(out, "Streak:          %d day(s), best %d, x%.1f\n",
			sum.CurrentStreakDays, sum.LongestStreakDays, sum.StreakMultiplier)

		history, err := rt.store.RecentResults(ctx, rt.cfg.UserID, 50)
		if err != nil {
			return err
		}
		if leaks := drill.DetectLeaks(history); len(leaks) > 0 {
			fmt.Fprintln(out, sep)
			fmt.Fprintln(out, "Leaks:")
			for _, l := range leaks {
				fmt.Fprintf(out, "  %-12s  %d/%d missed  %s\n", l.Category, l.Misses, l.Attempts, l.Severity)
			}
		}
		return nil
	},
}
