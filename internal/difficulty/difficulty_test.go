package difficulty

import (
	"errors"
	"math"
	"testing"
)

func TestGenerateDefaultCurve(t *testing.T) {
	milestones := DefaultCurve()
	if len(milestones) != 100 {
		t.Fatalf("expected 100 milestones, got %d", len(milestones))
	}

	first := milestones[0]
	if first.Score != 0 || first.Level != 1 || first.Scaling != 1.0 {
		t.Errorf("unexpected first milestone: %+v", first)
	}
	last := milestones[99]
	if last.Level != 100 || last.Scaling != 5.5 || last.Bucket != 10 {
		t.Errorf("unexpected last milestone: %+v", last)
	}

	for i := 1; i < len(milestones); i++ {
		if milestones[i].Score <= milestones[i-1].Score {
			t.Fatalf("threshold not strictly increasing at level %d: %d <= %d",
				milestones[i].Level, milestones[i].Score, milestones[i-1].Score)
		}
		if milestones[i].Level != i+1 {
			t.Fatalf("milestone %d has level %d", i, milestones[i].Level)
		}
	}
}

func TestScoreThreshold(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 0},
		{2, 4},
		{3, 8},
		{4, 12},
		{5, 18},
		{6, 23},
		{10, 49},
	}
	for _, tt := range tests {
		if got := ScoreThreshold(tt.level, 50, 1.08); got != tt.want {
			t.Errorf("ScoreThreshold(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestMilestoneScalingAndLabel(t *testing.T) {
	m := DefaultCurve()
	for _, ms := range m {
		want := math.Round((1.0+4.5*float64(ms.Level-1)/99)*100) / 100
		if ms.Scaling != want {
			t.Errorf("level %d scaling = %v, want %v", ms.Level, ms.Scaling, want)
		}
	}
	if m[0].Label != "+0%" {
		t.Errorf("level 1 label = %q", m[0].Label)
	}
	if m[99].Label != "+450%" {
		t.Errorf("level 100 label = %q", m[99].Label)
	}
}

func TestBuckets(t *testing.T) {
	m := DefaultCurve()
	tests := map[int]int{1: 1, 10: 1, 11: 2, 50: 5, 51: 6, 91: 10, 100: 10}
	for level, want := range tests {
		if got := m[level-1].Bucket; got != want {
			t.Errorf("level %d bucket = %d, want %d", level, got, want)
		}
	}
}

func TestTrackerGreatestLowerBound(t *testing.T) {
	milestones := DefaultCurve()
	for score := 0; score < 5000; score += 7 {
		tr := NewTracker(milestones)
		got, _ := tr.Update(score)

		if got.Score > score {
			t.Fatalf("score %d: milestone threshold %d exceeds score", score, got.Score)
		}
		for _, m := range milestones {
			if m.Score <= score && m.Score > got.Score {
				t.Fatalf("score %d: level %d has a greater qualifying threshold than level %d",
					score, m.Level, got.Level)
			}
		}
	}
}

func TestTrackerScenarios(t *testing.T) {
	tr := NewTracker(nil)

	m, changed := tr.Update(0)
	if changed {
		t.Error("score 0 should not change level")
	}
	if m.Level != 1 || tr.Scaling() != 1.0 {
		t.Errorf("score 0: level=%d scaling=%v", m.Level, tr.Scaling())
	}

	// Level 2 threshold is floor(50*(1.08-1)) = 4.
	if _, changed := tr.Update(3); changed {
		t.Error("score 3 should stay on level 1")
	}
	m, changed = tr.Update(4)
	if !changed || m.Level != 2 {
		t.Errorf("score 4: changed=%v level=%d", changed, m.Level)
	}

	m, changed = tr.Update(49)
	if !changed {
		t.Error("score 49 should change level")
	}
	wantLevel := 0
	for level := 1; level <= 100; level++ {
		if ScoreThreshold(level, 50, 1.08) <= 49 {
			wantLevel = level
		}
	}
	if m.Level != wantLevel || tr.Level() != wantLevel {
		t.Errorf("score 49: level %d, want %d", m.Level, wantLevel)
	}
	wantScaling := math.Round((1.0+4.5*float64(wantLevel-1)/99)*100) / 100
	if tr.Scaling() != wantScaling {
		t.Errorf("score 49: scaling %v, want %v", tr.Scaling(), wantScaling)
	}

	if _, changed := tr.Update(49); changed {
		t.Error("repeated score should not report a change")
	}

	tr.Reset()
	if tr.Level() != 1 {
		t.Errorf("after reset level = %d", tr.Level())
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in   string
		want Preset
	}{
		{"easy", Easy},
		{"Normal", Normal},
		{"", Normal},
		{" HARD ", Hard},
	}
	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if err != nil {
			t.Errorf("ParsePreset(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePreset(%q) = %+v", tt.in, got)
		}
	}

	if _, err := ParsePreset("nightmare"); !errors.Is(err, ErrUnknownDifficulty) {
		t.Errorf("expected ErrUnknownDifficulty, got %v", err)
	}
}
