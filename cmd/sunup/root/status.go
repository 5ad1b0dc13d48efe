package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sunup/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show player progression and recent wakes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := svc.PlayerRepo().GetOrCreateMain(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Player Status"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", p.Level))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("XP", fmt.Sprintf("%d / %d to next level", p.XP, p.XPToNext)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Coins", fmt.Sprintf("%d %s", p.Coins, ui.IconCoin)))
			streak := fmt.Sprintf("%d day(s)", p.StreakDays)
			if p.StreakDays > 1 {
				streak += " " + ui.IconFire
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", streak))
			weekCount, err := svc.WakeRepo().CountSince(ctx, time.Now().AddDate(0, 0, -7))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Total wakes", fmt.Sprintf("%d (%d this week)", p.TotalWakes, weekCount)))
			if p.LastSuccess != "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Last success", p.LastSuccess))
			}

			wakes, err := svc.WakeRepo().ListRecent(ctx, 7)
			if err != nil {
				return err
			}
			if len(wakes) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "")
				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconSunrise+" Recent wakes"))
				for _, w := range wakes {
					fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s\n",
						w.WokeAt.Format("Mon Jan 2 15:04"),
						ui.Muted.Render("("+w.Difficulty+")"),
						fmt.Sprintf("+%d XP, +%d coins", w.XPAwarded, w.CoinsAwarded))
				}
			}
			return nil
		},
	}

	return cmd
}
