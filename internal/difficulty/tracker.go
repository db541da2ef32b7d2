package difficulty

// Tracker maps the current score to a milestone of the difficulty curve.
type Tracker struct {
	milestones []Milestone
	current    Milestone
}

// NewTracker creates a tracker over the given milestones, starting at the first one.
// A nil or empty slice falls back to DefaultCurve.
func NewTracker(milestones []Milestone) *Tracker {
	if len(milestones) == 0 {
		milestones = DefaultCurve()
	}
	return &Tracker{
		milestones: milestones,
		current:    milestones[0],
	}
}

// Update selects the milestone with the greatest threshold not exceeding score.
// Returns the selected milestone and whether the level changed.
func (t *Tracker) Update(score int) (Milestone, bool) {
	selected := t.milestones[0]
	for i := len(t.milestones) - 1; i >= 0; i-- {
		if score >= t.milestones[i].Score {
			selected = t.milestones[i]
			break
		}
	}

	if selected.Level == t.current.Level {
		return t.current, false
	}
	t.current = selected
	return selected, true
}

// Reset returns the tracker to the first milestone.
func (t *Tracker) Reset() {
	t.current = t.milestones[0]
}

// Level returns the current level.
func (t *Tracker) Level() int {
	return t.current.Level
}

// Scaling returns the current progressive scaling factor.
func (t *Tracker) Scaling() float64 {
	return t.current.Scaling
}

// Milestone returns the current milestone.
func (t *Tracker) Milestone() Milestone {
	return t.current
}

// Levels returns the number of levels on the curve.
func (t *Tracker) Levels() int {
	return len(t.milestones)
}
