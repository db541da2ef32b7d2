// Package input turns a raw terminal byte stream into held-key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report repeats, so movement keys stay held across the gap
// between two repeat events.
const keyHoldDuration = 120 * time.Millisecond

// diagonal scales each axis when two directions are held together.
const diagonal = 0.707

// Input represents the current frame's input state.
type Input struct {
	MoveX, MoveY float64 // Movement direction, each axis in [-1,1]
	Fire         bool
	Super        bool // Super weapon requested
	Pause        bool // Pause toggle pressed this frame
	Enter        bool
	Quit         bool
	Closed       bool // The byte stream ended
	Number       int  // Last digit pressed this frame, -1 if none
	Pressed      []byte
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	left   time.Time
	right  time.Time
	up     time.Time
	down   time.Time
	fire   time.Time
	closed bool
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch    chan byte
	state keyState
	buf   []byte
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 128)}
}

// Reset forgets held keys, e.g. when switching screens.
func (s *Stream) Reset() {
	closed := s.state.closed
	s.state = keyState{closed: closed}
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	return ReadInputAt(s, time.Now())
}

// ReadInputAt drains all available bytes from the stream and evaluates held
// keys at now. Handles escape sequences for arrow keys; one-shot keys
// (pause, super, enter, quit, digits) only count in the frame they arrive.
func ReadInputAt(s *Stream, now time.Time) Input {
	buf := s.buf[:0]

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.state.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	s.buf = buf

	in := Input{Number: -1, Pressed: buf, Closed: s.state.closed}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.up = now
			case 'B':
				s.state.down = now
			case 'C':
				s.state.right = now
			case 'D':
				s.state.left = now
			}
			i += 2
			continue
		}

		applyByte(&s.state, &in, b, now)
	}

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }

	if held(s.state.left) {
		in.MoveX--
	}
	if held(s.state.right) {
		in.MoveX++
	}
	if held(s.state.up) {
		in.MoveY--
	}
	if held(s.state.down) {
		in.MoveY++
	}
	if in.MoveX != 0 && in.MoveY != 0 {
		in.MoveX *= diagonal
		in.MoveY *= diagonal
	}
	in.Fire = held(s.state.fire)
	in.Quit = in.Quit || s.state.closed

	return in
}

// applyByte updates held-key timestamps and one-shot flags for a single byte.
func applyByte(state *keyState, in *Input, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'k', 'K':
		state.up = now
	case 's', 'S', 'j', 'J':
		state.down = now
	case ' ':
		state.fire = now
	case 'e', 'E', 'x', 'X':
		in.Super = true
	case 'p', 'P':
		in.Pause = true
	case '\n', '\r':
		in.Enter = true
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		in.Number = int(b - '0')
	}
}
