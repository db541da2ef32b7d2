// Package audio synthesizes the game's sound cues with beep and plays them
// on the system speaker. A player that fails to open the speaker stays
// silent; it never reports errors into the game.
package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/starfall/internal/fx"
)

const (
	sampleRate = beep.SampleRate(44100)
	queueSize  = 32
)

// Player is an fx.AudioSink backed by the speaker.
type Player struct {
	logger *log.Logger
	rate   beep.SampleRate
	queue  chan fx.Sound
	done   chan struct{}
	out    func(beep.Streamer)

	mu          sync.Mutex
	initialized bool
	speakerOpen bool
	closed      bool
	wg          sync.WaitGroup

	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewPlayer creates a player. Call Initialize to open the speaker; until
// then every cue is dropped.
func NewPlayer(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		logger: logger,
		rate:   sampleRate,
		queue:  make(chan fx.Sound, queueSize),
		done:   make(chan struct{}),
	}
}

// Initialize opens the speaker and starts the synthesis goroutine.
// Calling it twice is a no-op.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || p.closed {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		p.logger.Warn("audio disabled", "error", err)
		return err
	}

	p.speakerOpen = true
	mixer := &beep.Mixer{}
	speaker.Play(mixer)
	p.start(func(s beep.Streamer) {
		speaker.Lock()
		mixer.Add(s)
		speaker.Unlock()
	})
	return nil
}

// start launches the goroutine that turns queued cues into streamers.
// Caller holds p.mu.
func (p *Player) start(out func(beep.Streamer)) {
	p.out = out
	p.initialized = true
	p.wg.Add(1)
	go p.loop()
}

func (p *Player) loop() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case s := <-p.queue:
			if st := Streamer(s, p.rate); st != nil {
				p.out(st)
				p.played.Add(1)
			}
		}
	}
}

// Play queues a cue. It never blocks: when the queue is full or the
// speaker is not open the cue is dropped.
func (p *Player) Play(s fx.Sound) {
	p.mu.Lock()
	ready := p.initialized && !p.closed
	p.mu.Unlock()
	if !ready {
		p.dropped.Add(1)
		return
	}

	select {
	case p.queue <- s:
	default:
		p.dropped.Add(1)
	}
}

// Close stops synthesis and silences the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	speakerOpen := p.speakerOpen
	p.mu.Unlock()

	close(p.done)
	p.wg.Wait()
	if speakerOpen {
		speaker.Clear()
	}
}

// Stats returns how many cues were played and dropped.
func (p *Player) Stats() (played, dropped uint64) {
	return p.played.Load(), p.dropped.Load()
}
