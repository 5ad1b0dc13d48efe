package tui

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sunup/internal/audio"
	"sunup/internal/engine"
	"sunup/internal/storage"
	"sunup/internal/ui"
)

type missionModel struct {
	ctx context.Context
	svc *engine.Service

	alarm   *storage.Alarm
	mission *engine.Mission
	loop    *audio.Loop

	input    string
	feedback string

	result  *engine.WakeResult
	snoozed *time.Time
	err     error
}

type resolvedMsg struct {
	res *engine.WakeResult
	err error
}

type snoozedMsg struct {
	at  time.Time
	err error
}

func newMissionModel(ctx context.Context, svc *engine.Service, a *storage.Alarm, loop *audio.Loop) missionModel {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return missionModel{
		ctx:     ctx,
		svc:     svc,
		alarm:   a,
		mission: engine.NewMission(engine.Difficulty(a.Difficulty), rng),
		loop:    loop,
	}
}

func (m missionModel) Init() tea.Cmd {
	m.loop.Start(m.alarm.Volume)
	return nil
}

func (m missionModel) resolveCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ResolveSuccess(m.ctx, m.alarm.ID)
		return resolvedMsg{res: res, err: err}
	}
}

func (m missionModel) snoozeCmd() tea.Cmd {
	return func() tea.Msg {
		at, err := m.svc.Snooze(m.ctx, m.alarm.ID)
		return snoozedMsg{at: at, err: err}
	}
}

func (m missionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resolvedMsg:
		m.loop.Stop()
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.result = msg.res
		return m, nil
	case snoozedMsg:
		if msg.err != nil {
			m.feedback = ui.Bad.Render(msg.err.Error())
			return m, nil
		}
		m.loop.Stop()
		at := msg.at
		m.snoozed = &at
		return m, tea.Quit
	case tea.KeyMsg:
		if m.result != nil {
			// Victory screen: any key leaves.
			return m, tea.Quit
		}
		switch msg.String() {
		case "ctrl+c":
			m.loop.Stop()
			return m, tea.Quit
		case "s":
			return m, m.snoozeCmd()
		case "enter":
			return m.submit()
		case "backspace":
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}
			return m, nil
		default:
			k := msg.String()
			if len(k) == 1 && (k[0] >= '0' && k[0] <= '9' || k == "-" && m.input == "") {
				m.input += k
			}
			return m, nil
		}
	}
	return m, nil
}

func (m missionModel) submit() (tea.Model, tea.Cmd) {
	answer, err := strconv.Atoi(strings.TrimSpace(m.input))
	if err != nil {
		m.feedback = ui.Warn.Render("Enter a number.")
		m.input = ""
		return m, nil
	}

	correct, resolved := m.mission.Submit(answer)
	m.input = ""
	switch {
	case resolved:
		m.feedback = ""
		return m, m.resolveCmd()
	case correct:
		m.feedback = ui.Good.Render("Nice! Keep going.")
	default:
		m.feedback = ui.Bad.Render("Missed it. Streak reset.")
	}
	return m, nil
}

func (m missionModel) View() string {
	var b strings.Builder

	if m.result != nil {
		res := m.result
		b.WriteString(ui.Heading(ui.IconTrophy, "Victory!") + "\n\n")
		line := fmt.Sprintf("+%d XP  +%d %s", res.Reward.XP, res.Reward.Coins, ui.IconCoin)
		if res.LevelUp {
			line += "  " + ui.BadgeLevelUp + fmt.Sprintf(" %d → %d", res.LevelBefore, res.Player.Level)
		}
		b.WriteString(ui.Panel.Render(line) + "\n")
		b.WriteString(ui.LabelValue("Streak", fmt.Sprintf("%d day(s) %s", res.Player.StreakDays, ui.IconFire)) + "\n")
		if res.Rearmed {
			b.WriteString(ui.Muted.Render("Next ring: "+res.NextFire.Format("Mon 15:04")) + "\n")
		}
		b.WriteString("\n" + ui.Muted.Render("press any key to exit") + "\n")
		return b.String()
	}

	label := m.alarm.Label
	if label == "" {
		label = "Alarm"
	}
	b.WriteString(ui.Heading(ui.IconAlarm, label+" — Math Mission") + "\n")
	b.WriteString(ui.Muted.Render(fmt.Sprintf("Solve %d in a row (%d/%d)", m.mission.Needed(), m.mission.Correct(), m.mission.Needed())) + "\n\n")

	p := m.mission.Problem()
	b.WriteString(ui.Panel.Render(ui.Title.Render(fmt.Sprintf("%d %s %d = ?", p.A, p.Op, p.B))) + "\n\n")
	b.WriteString(ui.LabelValue("Answer", m.input+"▏") + "\n")
	if m.feedback != "" {
		b.WriteString(m.feedback + "\n")
	}

	hints := "enter submit"
	if m.alarm.SnoozeEnabled && m.alarm.SnoozeCount < m.alarm.SnoozeMax {
		left := m.alarm.SnoozeMax - m.alarm.SnoozeCount
		hints += fmt.Sprintf(" · s snooze %dm (%d left) %s", m.alarm.SnoozeMinutes, left, ui.IconZzz)
	}
	b.WriteString("\n" + ui.Muted.Render(hints) + "\n")
	return b.String()
}
