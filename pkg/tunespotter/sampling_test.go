package tunespotter

import "testing"

func assertWindow(t *testing.T, w SampleWindow, index, start, length int) {
	t.Helper()
	if w.Index != index || w.StartSec != start || w.LengthSec != length {
		t.Errorf("window = %+v, want index=%d start=%d length=%d", w, index, start, length)
	}
}

func TestPlanWindowsExplicitRange(t *testing.T) {
	rng := &TimeRange{StartSec: 60, EndSec: 150, HasEnd: true}
	windows := PlanWindows(300, rng, false, DefaultWindowLengthSec)

	if len(windows) != 1 {
		t.Fatalf("got %d windows, want 1", len(windows))
	}
	assertWindow(t, windows[0], 0, 60, 90)
}

func TestPlanWindowsExplicitRangeBeatsBroadSampling(t *testing.T) {
	rng := &TimeRange{StartSec: 10, EndSec: 40, HasEnd: true}
	windows := PlanWindows(900, rng, true, DefaultWindowLengthSec)

	if len(windows) != 1 {
		t.Fatalf("explicit range must win over broad sampling, got %d windows", len(windows))
	}
	assertWindow(t, windows[0], 0, 10, 30)
}

func TestPlanWindowsBroadSamplingMedium(t *testing.T) {
	windows := PlanWindows(500, nil, true, DefaultWindowLengthSec)

	if len(windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(windows))
	}
	assertWindow(t, windows[0], 0, 0, 30)
	assertWindow(t, windows[1], 1, 250, 30)
}

func TestPlanWindowsBroadSamplingLong(t *testing.T) {
	windows := PlanWindows(900, nil, true, DefaultWindowLengthSec)

	if len(windows) != 4 {
		t.Fatalf("got %d windows, want 4", len(windows))
	}
	wantStarts := []int{0, 225, 450, 675}
	for i, w := range windows {
		assertWindow(t, w, i, wantStarts[i], 30)
	}
}

func TestPlanWindowsBroadSamplingShortMedia(t *testing.T) {
	// Broad sampling on media at or below the floor degrades to the
	// default single window.
	windows := PlanWindows(180, nil, true, DefaultWindowLengthSec)

	if len(windows) != 1 {
		t.Fatalf("got %d windows, want 1", len(windows))
	}
	assertWindow(t, windows[0], 0, 0, 30)
}

func TestPlanWindowsStartOnly(t *testing.T) {
	rng := &TimeRange{StartSec: 100}
	windows := PlanWindows(300, rng, false, DefaultWindowLengthSec)

	if len(windows) != 1 {
		t.Fatalf("got %d windows, want 1", len(windows))
	}
	assertWindow(t, windows[0], 0, 100, 30)
}

func TestPlanWindowsStartOnlyClamped(t *testing.T) {
	rng := &TimeRange{StartSec: 290}
	windows := PlanWindows(300, rng, false, DefaultWindowLengthSec)

	if len(windows) != 1 {
		t.Fatalf("got %d windows, want 1", len(windows))
	}
	assertWindow(t, windows[0], 0, 290, 10)
}

func TestPlanWindowsNoHints(t *testing.T) {
	windows := PlanWindows(300, nil, false, DefaultWindowLengthSec)

	if len(windows) != 1 {
		t.Fatalf("got %d windows, want 1", len(windows))
	}
	assertWindow(t, windows[0], 0, 0, 30)
}

func TestPlanWindowsNoHintsShortMedia(t *testing.T) {
	windows := PlanWindows(20, nil, false, DefaultWindowLengthSec)

	if len(windows) != 1 {
		t.Fatalf("got %d windows, want 1", len(windows))
	}
	assertWindow(t, windows[0], 0, 0, 20)
}
