package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"sunup/internal/audio"
	"sunup/internal/engine"
	"sunup/internal/storage"
)

// MissionOutcome reports how a ring cycle ended.
type MissionOutcome struct {
	Result  *engine.WakeResult // non-nil when the challenge was cleared
	Snoozed bool
}

// RunMission drives the ringing/math-mission screen for a fired alarm.
// The audio loop starts with the screen and is stopped on every exit
// path.
func RunMission(ctx context.Context, svc *engine.Service, a *storage.Alarm, loop *audio.Loop, out io.Writer) (*MissionOutcome, error) {
	m := newMissionModel(ctx, svc, a, loop)
	p := tea.NewProgram(m, tea.WithOutput(out))
	final, err := p.Run()
	loop.Stop()
	if err != nil {
		return nil, err
	}

	fm, ok := final.(missionModel)
	if !ok {
		return &MissionOutcome{}, nil
	}
	if fm.err != nil {
		return nil, fm.err
	}
	return &MissionOutcome{Result: fm.result, Snoozed: fm.snoozed != nil}, nil
}
