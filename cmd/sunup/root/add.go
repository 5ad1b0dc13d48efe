package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sunup/internal/config"
	"sunup/internal/engine"
	"sunup/internal/ui"
)

func newAddCmd(cfg config.Config) *cobra.Command {
	var (
		timeSpec      string
		daysSpec      string
		difficulty    string
		soundID       string
		volume        float64
		snoozeOff     bool
		snoozeMinutes int
		snoozeMax     int
	)

	cmd := &cobra.Command{
		Use:   "add <label>",
		Short: "Add an alarm",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("label is required")
			}
			if timeSpec == "" {
				return errors.New("--time is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			hour, minute, err := engine.ParseTimeOfDay(timeSpec)
			if err != nil {
				return err
			}
			days, err := engine.ParseDays(daysSpec)
			if err != nil {
				return err
			}
			diff, err := engine.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}

			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			a, err := svc.CreateAlarm(ctx, engine.AlarmInput{
				Hour:          hour,
				Minute:        minute,
				Label:         args[0],
				RepeatDays:    days,
				SoundID:       soundID,
				Volume:        volume,
				SnoozeEnabled: !snoozeOff,
				SnoozeMinutes: snoozeMinutes,
				SnoozeMax:     snoozeMax,
				Difficulty:    diff,
			})
			if err != nil {
				return err
			}

			next := engine.NextOccurrence(*a, svc.Now())
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s %s\n",
				ui.Good.Render(ui.IconPlus+" Added"),
				ui.Key.Render(a.TimeOfDay()),
				a.Label,
				ui.Muted.Render("("+ui.DaysText(a.RepeatDays)+", "+a.Difficulty+")"),
				ui.Muted.Render("#"+shortID(a.ID)))
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", ui.LabelValue("Next ring", next.Format("Mon Jan 2 15:04")))
			return nil
		},
	}

	cmd.Flags().StringVarP(&timeSpec, "time", "t", "", "Alarm time, HH:MM (24-hour)")
	cmd.Flags().StringVarP(&daysSpec, "days", "d", "", "Repeat days: mon,wed | 1,3 | daily | weekdays | weekends (empty = one-off)")
	cmd.Flags().StringVar(&difficulty, "difficulty", cfg.Defaults.Difficulty, "Mission difficulty (easy|med|hard)")
	cmd.Flags().StringVar(&soundID, "sound", cfg.Defaults.SoundID, "Alarm sound id")
	cmd.Flags().Float64Var(&volume, "volume", cfg.Defaults.Volume, "Volume (0.0-1.0)")
	cmd.Flags().BoolVar(&snoozeOff, "no-snooze", false, "Disallow snoozing")
	cmd.Flags().IntVar(&snoozeMinutes, "snooze-minutes", cfg.Defaults.SnoozeMinutes, "Minutes per snooze")
	cmd.Flags().IntVar(&snoozeMax, "snooze-max", cfg.Defaults.SnoozeMax, "Max snoozes per ring cycle")

	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
