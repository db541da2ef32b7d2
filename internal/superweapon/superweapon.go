// Package superweapon implements the charge-gated board-clearing weapon.
package superweapon

import "time"

// Controller holds the charge and activation state of one session.
type Controller struct {
	threshold int
	duration  time.Duration
	charge    int
	ready     bool
	active    bool
	activated time.Duration
	deadline  time.Duration
}

// New creates a controller that becomes ready at threshold charge and stays
// active for duration after activation.
func New(threshold int, duration time.Duration) *Controller {
	if threshold < 1 {
		threshold = 1
	}
	return &Controller{threshold: threshold, duration: duration}
}

// Reset empties the charge and deactivates.
func (c *Controller) Reset() {
	c.charge = 0
	c.ready = false
	c.active = false
	c.activated = 0
	c.deadline = 0
}

// AddCharge adds kill points, clamped to the threshold. Returns true if the
// weapon became ready with this call.
func (c *Controller) AddCharge(points int) bool {
	if points <= 0 || c.ready {
		return false
	}
	c.charge += points
	if c.charge >= c.threshold {
		c.charge = c.threshold
		c.ready = true
		return true
	}
	return false
}

// Activate fires the weapon if it is ready and not already active.
func (c *Controller) Activate(now time.Duration) bool {
	if !c.ready || c.active {
		return false
	}
	c.charge = 0
	c.ready = false
	c.active = true
	c.activated = now
	c.deadline = now + c.duration
	return true
}

// Update deactivates the weapon once its deadline has passed. Returns true
// on the tick the weapon deactivates.
func (c *Controller) Update(now time.Duration) bool {
	if c.active && now >= c.deadline {
		c.active = false
		return true
	}
	return false
}

// Charge returns the current charge.
func (c *Controller) Charge() int { return c.charge }

// Threshold returns the charge needed to become ready.
func (c *Controller) Threshold() int { return c.threshold }

// Ready reports whether the weapon can be activated.
func (c *Controller) Ready() bool { return c.ready }

// Active reports whether the weapon is currently firing.
func (c *Controller) Active() bool { return c.active }

// ActivatedAt returns the simulation time of the last activation.
func (c *Controller) ActivatedAt() time.Duration { return c.activated }

// Fraction returns charge/threshold in [0,1].
func (c *Controller) Fraction() float64 {
	return float64(c.charge) / float64(c.threshold)
}
