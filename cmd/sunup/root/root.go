package root

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"sunup/internal/config"
	"sunup/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "sunup",
	Short:         "Sunup — the alarm clock that makes you earn the morning",
	Long:          "Sunup is a local-first alarm clock: every alarm is locked behind a math mission, and every cleared mission feeds your XP, coins and wake streak.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Warn.Render(ui.IconWarn+" "+err.Error()))
		cfg = config.Default()
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	})))

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(cfg),
		newListCmd(),
		newSetCmd(),
		newOnCmd(),
		newOffCmd(),
		newRmCmd(),
		newRingCmd(),
		newWatchCmd(),
		newStatusCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
