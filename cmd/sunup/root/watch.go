package root

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sunup/internal/audio"
	"sunup/internal/engine"
	"sunup/internal/tui"
	"sunup/internal/ui"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run in the foreground and ring alarms as they come due",
		Long: `Watch reconciles the schedule (re-arming every enabled alarm and
dropping triggers for disabled or deleted ones), then waits. When an
alarm fires it takes over the terminal with the math mission; solving
the mission pays out XP and coins and re-arms repeating alarms.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, sched, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			rep, err := svc.Reconcile(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				ui.Heading(ui.IconSunrise, "Watching"),
				ui.Muted.Render(fmt.Sprintf("(%d armed, %d cleaned up — ctrl+c to stop)", rep.Armed, rep.Cancelled)))

			for {
				select {
				case <-ctx.Done():
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Stopped."))
					return nil
				case firing := <-sched.Fired():
					if err := ringAlarm(ctx, cmd, svc, firing.AlarmID); err != nil {
						return err
					}
				}
			}
		},
	}

	return cmd
}

func ringAlarm(ctx context.Context, cmd *cobra.Command, svc *engine.Service, alarmID string) error {
	a, err := svc.HandleFire(ctx, alarmID)
	if err != nil {
		var notFound engine.NotFoundError
		if errors.As(err, &notFound) {
			// Deleted between install and fire; nothing to ring.
			slog.Warn("fired trigger for missing alarm", "alarm_id", alarmID)
			return nil
		}
		return err
	}

	outcome, err := tui.RunMission(ctx, svc, a, audio.NewLoop(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	switch {
	case outcome.Snoozed:
		fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(ui.IconZzz+" Snoozed, still watching."))
	case outcome.Result != nil:
		res := outcome.Result
		line := fmt.Sprintf("%s +%d XP, +%d coins", ui.Good.Render(ui.IconDone+" Woke up!"), res.Reward.XP, res.Reward.Coins)
		if res.Rearmed {
			line += ui.Muted.Render("  next " + res.NextFire.Format("Mon 15:04"))
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	default:
		fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Mission abandoned — alarm not resolved."))
	}
	return nil
}
