// Package audio plays the looping alarm tone. Best effort only:
// failures are logged and never propagated, so a machine with no sound
// device still gets a working alarm flow.
package audio

import (
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate = 44100
	toneHz     = 880
	// Beep/silence pattern, in samples.
	beepLen    = sampleRate * 3 / 10
	silenceLen = sampleRate * 2 / 10
)

var (
	otoCtx  *oto.Context
	otoOnce sync.Once
)

// audioContext initializes the shared oto context once. Returns nil
// when no audio device is available.
func audioContext() *oto.Context {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		}
		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			slog.Warn("audio unavailable", "error", err)
			return
		}
		<-ready
		otoCtx = ctx
	})
	return otoCtx
}

// tonePCM renders one beep-plus-silence cycle as 16-bit mono PCM.
func tonePCM(volume float64) []byte {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	buf := make([]byte, (beepLen+silenceLen)*2)
	for i := 0; i < beepLen; i++ {
		v := math.Sin(2 * math.Pi * toneHz * float64(i) / sampleRate)
		// Short fade at both ends to avoid clicks.
		fade := 1.0
		const ramp = sampleRate / 100
		if i < ramp {
			fade = float64(i) / ramp
		} else if beepLen-i < ramp {
			fade = float64(beepLen-i) / ramp
		}
		sample := int16(v * fade * volume * math.MaxInt16)
		buf[2*i] = byte(sample)
		buf[2*i+1] = byte(sample >> 8)
	}
	return buf
}

// loopReader serves the same PCM chunk forever.
type loopReader struct {
	data []byte
	pos  int
}

func (r *loopReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		c := copy(p[n:], r.data[r.pos:])
		n += c
		r.pos += c
		if r.pos == len(r.data) {
			r.pos = 0
		}
	}
	return n, nil
}

var _ io.Reader = (*loopReader)(nil)

// Loop is one alarm-tone playback session.
type Loop struct {
	mu     sync.Mutex
	player *oto.Player
}

func NewLoop() *Loop {
	return &Loop{}
}

// Start begins looping the tone at the given volume. Calling Start on a
// loop that is already playing restarts it.
func (l *Loop) Start(volume float64) {
	ctx := audioContext()
	if ctx == nil {
		slog.Warn("alarm tone skipped, no audio context")
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.player != nil {
		l.player.Close()
	}
	l.player = ctx.NewPlayer(&loopReader{data: tonePCM(volume)})
	l.player.Play()
	slog.Debug("alarm tone started", "volume", volume)
}

// Stop ends playback. Stopping an idle loop is a no-op.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.player == nil {
		return
	}
	l.player.Pause()
	if err := l.player.Close(); err != nil {
		slog.Warn("close audio player", "error", err)
	}
	l.player = nil
	slog.Debug("alarm tone stopped")
}
