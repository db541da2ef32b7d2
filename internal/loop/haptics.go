package loop

import (
	"sync/atomic"

	"github.com/tomz197/starfall/internal/fx"
)

// bellHaptics turns haptic patterns into a terminal bell. Vibrate only
// records the request; drawFrame rings at most once per frame.
type bellHaptics struct {
	pending atomic.Bool
}

func (b *bellHaptics) Vibrate(p fx.Pattern) {
	if p.Total() > 0 {
		b.pending.Store(true)
	}
}

// take reports whether a bell is due and clears the request.
func (b *bellHaptics) take() bool {
	return b.pending.Swap(false)
}

var _ fx.HapticSink = (*bellHaptics)(nil)
