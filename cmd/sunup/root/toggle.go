package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sunup/internal/ui"
)

func newOnCmd() *cobra.Command {
	return toggleCmd("on", "Enable an alarm and arm its next ring", true)
}

func newOffCmd() *cobra.Command {
	return toggleCmd("off", "Disable an alarm and cancel its trigger", false)
}

func toggleCmd(use, short string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
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
			updated, err := svc.SetEnabled(ctx, a.ID, enabled)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s is now %s\n",
				ui.IconAlarm,
				ui.Key.Render(updated.TimeOfDay()),
				updated.Label,
				ui.EnabledText(updated.Enabled))
			return nil
		},
	}
}
