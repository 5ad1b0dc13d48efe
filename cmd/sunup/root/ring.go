package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sunup/internal/audio"
	"sunup/internal/tui"
	"sunup/internal/ui"
)

func newRingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ring <id>",
		Short: "Ring an alarm now and run its math mission",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			a, err := resolveAlarm(ctx, svc, args[0])
			if err != nil {
				return err
			}
			fired, err := svc.HandleFire(ctx, a.ID)
			if err != nil {
				return err
			}

			outcome, err := tui.RunMission(ctx, svc, fired, audio.NewLoop(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			switch {
			case outcome.Snoozed:
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(ui.IconZzz+" Snoozed."))
			case outcome.Result == nil:
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Mission abandoned — alarm not resolved."))
			}
			return nil
		},
	}

	return cmd
}
