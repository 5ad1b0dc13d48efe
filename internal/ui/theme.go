package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sunup theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconAlarm   = "⏰"
	IconSunrise = "🌅"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconCoin    = "🪙"
	IconFire    = "🔥"
	IconZzz     = "😴"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconLoop    = "🔁"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel      = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func EnabledText(on bool) string {
	if on {
		return Good.Render("on")
	}
	return Muted.Render("off")
}

var shortDayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DaysText renders a repeat-day set compactly: "once", "daily",
// "weekdays", "weekends" or a Mon,Wed,Fri style list.
func DaysText(days []int) string {
	switch {
	case len(days) == 0:
		return "once"
	case len(days) == 7:
		return "daily"
	}
	mask := 0
	for _, d := range days {
		if d >= 0 && d <= 6 {
			mask |= 1 << d
		}
	}
	switch mask {
	case 0b0111110:
		return "weekdays"
	case 0b1000001:
		return "weekends"
	}
	parts := make([]string, 0, len(days))
	for d := 0; d < 7; d++ {
		if mask&(1<<d) != 0 {
			parts = append(parts, shortDayNames[d])
		}
	}
	return strings.Join(parts, ",")
}
