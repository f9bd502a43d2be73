package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/drillz/internal/rewards"
)

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Claim diamond rewards",
}

var claimDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Check in for today and claim the daily login reward",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer rt.Close()

		res, err := rt.trainer.DailyLogin(cmd.Context())
		out := cmd.OutOrStdout()
		for _, cr := range res.Claims {
			printClaim(out, cr)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nStreak: %d day(s)   Balance: ◆ %d   Left today: %d\n",
			res.Streak, res.Summary.TotalLifetime, res.Summary.RemainingCapToday)
		return nil
	},
}

var claimReferralCmd = &cobra.Command{
	Use:   "referral <referred-user>",
	Short: "Claim the referral bonus for a user you referred",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer rt.Close()

		cr := rt.trainer.ClaimReferral(cmd.Context(), args[0])
		printClaim(cmd.OutOrStdout(), cr)
		return cr.Err
	},
}

func printClaim(w io.Writer, cr rewards.ClaimResult) {
	switch {
	case cr.Err != nil:
		fmt.Fprintf(w, "%-24s  failed: %v\n", cr.Kind, cr.Err)
	case cr.Replayed:
		fmt.Fprintf(w, "%-24s  already claimed (%d %s)\n", cr.Kind, cr.AmountAwarded, cr.Currency)
	case cr.AmountAwarded == 0:
		fmt.Fprintf(w, "%-24s  daily cap reached, nothing awarded\n", cr.Kind)
	default:
		line := fmt.Sprintf("%-24s  +%d %s", cr.Kind, cr.AmountAwarded, cr.Currency)
		if cr.Multiplier > 1 {
			line += fmt.Sprintf(" (x%.1f streak)", cr.Multiplier)
		}
		if cr.BypassedCap {
			line += " [uncapped]"
		}
		fmt.Fprintln(w, line)
		if c := cr.Celebration; c != nil {
			fmt.Fprintf(w, "  %s %s\n", c.Icon, c.Rarity.CelebrationMessage())
		}
	}
}

func init() {
	claimCmd.AddCommand(claimDailyCmd)
	claimCmd.AddCommand(claimReferralCmd)
}
