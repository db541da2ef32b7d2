package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/tomz197/starfall/internal/fx"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
	WaveNoise
)

// oscillator generates a wave whose frequency sweeps from start to end
// over its duration
type oscillator struct {
	start    float64
	end      float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

func newOscillator(start, end float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		start:    start,
		end:      end,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

// freq returns the instantaneous frequency. Sweeps between positive
// frequencies are exponential, otherwise linear.
func (o *oscillator) freq() float64 {
	if o.start == o.end || o.duration == 0 {
		return o.start
	}
	t := float64(o.position) / float64(o.duration)
	if o.start > 0 && o.end > 0 {
		return o.start * math.Pow(o.end/o.start, t)
	}
	return o.start + (o.end-o.start)*t
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq() / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain. math.Log2(0) is -Inf, so zero gain
// is expressed as silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// layer is one oscillator of a voice
type layer struct {
	from, to float64 // Frequency sweep in Hz
	wave     WaveType
	volume   float64
	attack   time.Duration
	release  time.Duration
}

// voice is a set of layers played together, optionally delayed
type voice struct {
	delay    time.Duration
	duration time.Duration
	layers   []layer
}

func tone(freq float64, wave WaveType, vol float64, attack, release time.Duration) layer {
	return layer{from: freq, to: freq, wave: wave, volume: vol, attack: attack, release: release}
}

func sweep(from, to float64, wave WaveType, vol float64, attack, release time.Duration) layer {
	return layer{from: from, to: to, wave: wave, volume: vol, attack: attack, release: release}
}

const ms = time.Millisecond

// voices returns the layered synthesis recipe for a cue.
func voices(s fx.Sound) []voice {
	switch s.Cue {
	case fx.CueShoot:
		pitch := 700 + rand.Float64()*120
		return []voice{{duration: 70 * ms, layers: []layer{
			tone(pitch, WaveSquare, 0.25, 2*ms, 40*ms),
			tone(pitch*0.8, WaveSquare, 0.12, 1*ms, 30*ms),
			tone(pitch*2, WaveTriangle, 0.1, 2*ms, 20*ms),
			tone(0, WaveNoise, 0.1, 1*ms, 50*ms),
		}}}
	case fx.CueEnemyShoot:
		pitch := 450 + rand.Float64()*150
		return []voice{{duration: 140 * ms, layers: []layer{
			tone(pitch, WaveSquare, 0.12, 10*ms, 60*ms),
			tone(pitch*0.75, WaveSaw, 0.1, 15*ms, 50*ms),
			sweep(pitch*1.5, pitch*1.2, WaveSine, 0.06, 5*ms, 40*ms),
		}}}
	case fx.CueHit:
		return []voice{{duration: 150 * ms, layers: []layer{
			tone(1000, WaveSquare, 0.18, 2*ms, 50*ms),
			tone(500, WaveSine, 0.12, 5*ms, 40*ms),
		}}}
	case fx.CueExplosion:
		size := math.Max(0.5, math.Min(s.Size, 3))
		bass, mid, high := 80-size*10, 250-size*20, 700-size*50
		return []voice{{duration: time.Duration((0.3 + size*0.1) * float64(time.Second)), layers: []layer{
			sweep(bass, bass*0.5, WaveSine, 0.4*size, 10*ms, 200*ms),
			sweep(mid, mid*0.6, WaveSaw, 0.3*size, 20*ms, 150*ms),
			sweep(high, high*0.4, WaveSquare, 0.2*size, 5*ms, 100*ms),
		}}}
	case fx.CueDamage:
		return []voice{{duration: 180 * ms, layers: []layer{
			sweep(800, 200, WaveSquare, 0.25, 2*ms, 80*ms),
			sweep(400, 150, WaveTriangle, 0.18, 5*ms, 70*ms),
			tone(150, WaveSine, 0.15, 10*ms, 60*ms),
		}}}
	case fx.CueSuperWeapon:
		return []voice{{duration: 600 * ms, layers: []layer{
			sweep(200, 1200, WaveSine, 0.3, 50*ms, 200*ms),
			sweep(400, 1600, WaveSquare, 0.25, 80*ms, 200*ms),
			sweep(100, 50, WaveSine, 0.4, 10*ms, 150*ms),
			sweep(2000, 1000, WaveSine, 0.2, 20*ms, 250*ms),
		}}}
	case fx.CueGameOver:
		return []voice{{duration: 500 * ms, layers: []layer{
			sweep(800, 300, WaveSine, 0.25, 20*ms, 250*ms),
			sweep(400, 200, WaveSaw, 0.2, 30*ms, 200*ms),
			sweep(200, 100, WaveSine, 0.18, 50*ms, 150*ms),
		}}}
	case fx.CueLevelUp:
		return []voice{
			{duration: 100 * ms, layers: []layer{
				tone(600, WaveSine, 0.15, 10*ms, 30*ms),
				tone(900, WaveSine, 0.12, 10*ms, 40*ms),
			}},
			{delay: 80 * ms, duration: 100 * ms, layers: []layer{
				tone(800, WaveSine, 0.15, 10*ms, 30*ms),
				tone(1200, WaveSine, 0.12, 10*ms, 40*ms),
			}},
			{delay: 160 * ms, duration: 200 * ms, layers: []layer{
				tone(1000, WaveSine, 0.18, 10*ms, 60*ms),
				tone(1500, WaveSine, 0.15, 10*ms, 60*ms),
			}},
		}
	case fx.CueBonus:
		return []voice{{duration: 250 * ms, layers: []layer{
			sweep(1000, 1400, WaveSine, 0.18, 10*ms, 100*ms),
			sweep(1500, 2000, WaveSine, 0.12, 15*ms, 80*ms),
			tone(800, WaveTriangle, 0.1, 20*ms, 100*ms),
		}}}
	default:
		return nil
	}
}

// Streamer synthesizes a cue. Returns nil for unknown cues. The result
// drains after the longest voice ends.
func Streamer(s fx.Sound, rate beep.SampleRate) beep.Streamer {
	vs := voices(s)
	if len(vs) == 0 {
		return nil
	}

	parts := make([]beep.Streamer, 0, len(vs))
	total := 0
	for _, v := range vs {
		layers := make([]beep.Streamer, 0, len(v.layers))
		for _, l := range v.layers {
			osc := newOscillator(l.from, l.to, v.duration, l.wave, rate)
			shaped := newEnvelope(osc, v.duration, l.attack, l.release, rate)
			layers = append(layers, newVolume(shaped, l.volume))
		}
		mixed := beep.Mix(layers...)
		n := rate.N(v.duration)
		if v.delay > 0 {
			mixed = beep.Seq(beep.Silence(rate.N(v.delay)), mixed)
			n += rate.N(v.delay)
		}
		total = max(total, n)
		parts = append(parts, mixed)
	}
	return beep.Take(total, beep.Mix(parts...))
}
