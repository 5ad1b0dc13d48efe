package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sunup/internal/engine"
	"sunup/internal/ui"
)

func newSetCmd() *cobra.Command {
	var (
		timeSpec      string
		daysSpec      string
		label         string
		difficulty    string
		soundID       string
		volume        float64
		snooze        bool
		snoozeMinutes int
		snoozeMax     int
	)

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Edit an alarm (reschedules it when enabled)",
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

			in := engine.AlarmInput{
				Hour:          a.Hour,
				Minute:        a.Minute,
				Label:         a.Label,
				RepeatDays:    a.RepeatDays,
				SoundID:       a.SoundID,
				Volume:        a.Volume,
				SnoozeEnabled: a.SnoozeEnabled,
				SnoozeMinutes: a.SnoozeMinutes,
				SnoozeMax:     a.SnoozeMax,
				Difficulty:    engine.Difficulty(a.Difficulty),
			}

			if cmd.Flags().Changed("time") {
				in.Hour, in.Minute, err = engine.ParseTimeOfDay(timeSpec)
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("days") {
				in.RepeatDays, err = engine.ParseDays(daysSpec)
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("label") {
				in.Label = label
			}
			if cmd.Flags().Changed("difficulty") {
				in.Difficulty, err = engine.ParseDifficulty(difficulty)
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("sound") {
				in.SoundID = soundID
			}
			if cmd.Flags().Changed("volume") {
				in.Volume = volume
			}
			if cmd.Flags().Changed("snooze") {
				in.SnoozeEnabled = snooze
			}
			if cmd.Flags().Changed("snooze-minutes") {
				in.SnoozeMinutes = snoozeMinutes
			}
			if cmd.Flags().Changed("snooze-max") {
				in.SnoozeMax = snoozeMax
			}

			updated, err := svc.UpdateAlarm(ctx, a.ID, in)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconDone+" Updated"),
				ui.Key.Render(updated.TimeOfDay()),
				updated.Label,
				ui.Muted.Render("("+ui.DaysText(updated.RepeatDays)+", "+updated.Difficulty+")"))
			if updated.Enabled {
				next := engine.NextOccurrence(*updated, svc.Now())
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", ui.LabelValue("Next ring", next.Format("Mon Jan 2 15:04")))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&timeSpec, "time", "t", "", "Alarm time, HH:MM (24-hour)")
	cmd.Flags().StringVarP(&daysSpec, "days", "d", "", "Repeat days (empty = one-off)")
	cmd.Flags().StringVar(&label, "label", "", "Alarm label")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Mission difficulty (easy|med|hard)")
	cmd.Flags().StringVar(&soundID, "sound", "", "Alarm sound id")
	cmd.Flags().Float64Var(&volume, "volume", 1.0, "Volume (0.0-1.0)")
	cmd.Flags().BoolVar(&snooze, "snooze", true, "Allow snoozing")
	cmd.Flags().IntVar(&snoozeMinutes, "snooze-minutes", 5, "Minutes per snooze")
	cmd.Flags().IntVar(&snoozeMax, "snooze-max", 3, "Max snoozes per ring cycle")

	return cmd
}
