package audio

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/tomz197/starfall/internal/fx"
)

// drain streams s to completion and returns the number of samples produced.
func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			if math.IsNaN(smp[0]) || math.IsInf(smp[0], 0) {
				t.Fatal("non-finite sample")
			}
		}
		total += n
		if !ok || n == 0 {
			return total
		}
	}
	t.Fatal("streamer never drained")
	return 0
}

func TestStreamerLengths(t *testing.T) {
	tests := []struct {
		sound fx.Sound
		want  time.Duration
	}{
		{fx.Play(fx.CueShoot), 70 * time.Millisecond},
		{fx.Play(fx.CueEnemyShoot), 140 * time.Millisecond},
		{fx.Play(fx.CueHit), 150 * time.Millisecond},
		{fx.Explosion(1), 400 * time.Millisecond},
		{fx.Play(fx.CueDamage), 180 * time.Millisecond},
		{fx.Play(fx.CueSuperWeapon), 600 * time.Millisecond},
		{fx.Play(fx.CueGameOver), 500 * time.Millisecond},
		{fx.Play(fx.CueLevelUp), 360 * time.Millisecond},
		{fx.Play(fx.CueBonus), 250 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.sound.Cue.String(), func(t *testing.T) {
			s := Streamer(tt.sound, sampleRate)
			if s == nil {
				t.Fatal("no streamer")
			}
			got := drain(t, s)
			want := sampleRate.N(tt.want)
			if diff := got - want; diff < -1 || diff > 1 {
				t.Errorf("streamed %d samples, want %d", got, want)
			}
		})
	}
}

func TestStreamerUnknownCue(t *testing.T) {
	if Streamer(fx.Sound{Cue: fx.Cue(99)}, sampleRate) != nil {
		t.Error("unknown cue produced a streamer")
	}
}

func TestOscillatorSweep(t *testing.T) {
	o := newOscillator(100, 400, time.Second, WaveSine, sampleRate).(*oscillator)
	if o.freq() != 100 {
		t.Errorf("start freq = %v", o.freq())
	}
	o.position = o.duration / 2
	if f := o.freq(); math.Abs(f-200) > 1e-6 {
		t.Errorf("mid freq = %v, want 200", f)
	}
}

func TestPlayBeforeInitializeDrops(t *testing.T) {
	p := NewPlayer(log.New(io.Discard))
	p.Play(fx.Play(fx.CueShoot))
	if _, dropped := p.Stats(); dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	p.Close()
	p.Close()
}

func TestPlayNeverBlocks(t *testing.T) {
	p := NewPlayer(log.New(io.Discard))
	release := make(chan struct{})
	p.mu.Lock()
	p.start(func(beep.Streamer) { <-release })
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		for i := 0; i < queueSize*4; i++ {
			p.Play(fx.Play(fx.CueHit))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Play blocked on a stalled output")
	}
	if _, dropped := p.Stats(); dropped == 0 {
		t.Error("expected drops with a stalled output")
	}

	close(release)
	p.Close()
}
