package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sunup/internal/engine"
	"sunup/internal/ui"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alarms",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			alarms, err := svc.AlarmRepo().ListAll(ctx)
			if err != nil {
				return err
			}
			if len(alarms) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No alarms yet. Try: sunup add \"Wake up\" -t 07:00 -d weekdays"))
				return nil
			}

			entries, err := svc.ScheduleRepo().All(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconAlarm, "Alarms"))
			for i := range alarms {
				a := &alarms[i]
				line := fmt.Sprintf("%s  %s %s  %s  %s",
					ui.Muted.Render("#"+shortID(a.ID)),
					ui.Key.Render(a.TimeOfDay()),
					ui.EnabledText(a.Enabled),
					a.Label,
					ui.Muted.Render("("+ui.DaysText(a.RepeatDays)+", "+a.Difficulty+")"))
				if a.Enabled {
					if e, ok := entries[a.ID]; ok {
						line += "  " + ui.Muted.Render("→ "+e.FireAt.Format("Mon 15:04"))
					} else {
						next := engine.NextOccurrence(*a, svc.Now())
						line += "  " + ui.Muted.Render("→ "+next.Format("Mon 15:04")+" (unarmed)")
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	return cmd
}
