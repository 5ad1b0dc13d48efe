package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sunup/internal/ui"
)

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an alarm (cancels any outstanding trigger)",
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
			if err := svc.DeleteAlarm(ctx, a.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Warn.Render("Deleted"),
				ui.Key.Render(a.TimeOfDay()),
				a.Label)
			return nil
		},
	}

	return cmd
}
