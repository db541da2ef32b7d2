package clock

import (
	"testing"
	"time"
)

type fakeTime struct{ t time.Time }

func (f *fakeTime) now() time.Time          { return f.t }
func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestPauseFreezesElapsed(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := NewWithSource(ft.now)

	ft.advance(2 * time.Second)
	if got := c.Elapsed(); got != 2*time.Second {
		t.Fatalf("elapsed = %v, want 2s", got)
	}

	c.Pause()
	c.Pause()
	ft.advance(5 * time.Second)
	if got := c.Elapsed(); got != 2*time.Second {
		t.Errorf("elapsed while paused = %v, want 2s", got)
	}
	if got := c.TotalPaused(); got != 5*time.Second {
		t.Errorf("total paused = %v, want 5s", got)
	}

	c.Resume()
	c.Resume()
	ft.advance(time.Second)
	if got := c.Elapsed(); got != 3*time.Second {
		t.Errorf("elapsed after resume = %v, want 3s", got)
	}
	if c.Paused() {
		t.Error("clock still paused")
	}
}

func TestReset(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	c := NewWithSource(ft.now)
	ft.advance(time.Minute)
	c.Pause()
	ft.advance(time.Second)

	c.Reset()
	if c.Elapsed() != 0 || c.Paused() || c.TotalPaused() != 0 {
		t.Errorf("reset left state: elapsed=%v paused=%v", c.Elapsed(), c.Paused())
	}
}
