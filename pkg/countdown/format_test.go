package countdown

import "testing"

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{60, "00:01:00"},
		{3599, "00:59:59"},
		{3661, "01:01:01"},
		{99*3600 + 59*60 + 59, "99:59:59"},
		{100 * 3600, "100:00:00"},
		{-5, "00:00:00"},
	}

	for _, tt := range tests {
		if got := FormatTime(tt.seconds); got != tt.want {
			t.Errorf("FormatTime(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestStateString(t *testing.T) {
	if StateRunning.String() != "RUNNING" {
		t.Errorf("StateRunning.String() = %q", StateRunning.String())
	}
	if StateCompleted.String() != "COMPLETED" {
		t.Errorf("StateCompleted.String() = %q", StateCompleted.String())
	}
	if State(9).String() != "UNKNOWN" {
		t.Errorf("State(9).String() = %q", State(9).String())
	}
}

func TestTimerDisplay(t *testing.T) {
	labels := DefaultLabels()

	running := Timer{Remaining: 75, State: StateRunning}
	if got := running.Display(labels); got != "00:01:15" {
		t.Errorf("Display() = %q, want 00:01:15", got)
	}

	done := Timer{State: StateCompleted}
	if got := done.Display(labels); got != "Time's Up!" {
		t.Errorf("Display() = %q, want Time's Up!", got)
	}
}

func TestEntryCancelOnce(t *testing.T) {
	calls := 0
	e := &entry{handle: CancelFunc(func() { calls++ })}

	e.cancel()
	e.cancel()

	if calls != 1 {
		t.Errorf("handle cancelled %d times, want 1", calls)
	}
}
