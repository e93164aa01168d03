package session

import "testing"

func TestGapRecovery_InOrderNoGap(t *testing.T) {
	g := NewGapRecovery("s1", 1)

	status, err := g.CheckMessage(1, false)
	if err != nil {
		t.Fatalf("CheckMessage() error = %v", err)
	}
	if status != GapStatusNoGap {
		t.Errorf("status = %v, want GapStatusNoGap", status)
	}
	if g.OpenGap() != nil {
		t.Error("OpenGap() != nil after an in-order message")
	}
}

func TestGapRecovery_DetectsGap(t *testing.T) {
	g := NewGapRecovery("s1", 1)

	status, err := g.CheckMessage(5, false)
	if err != nil {
		t.Fatalf("CheckMessage() error = %v", err)
	}
	if status != GapStatusDetected {
		t.Errorf("status = %v, want GapStatusDetected", status)
	}
	gap := g.OpenGap()
	if gap == nil {
		t.Fatal("OpenGap() = nil, want an open gap")
	}
	if gap.BeginSeqNo != 1 || gap.EndSeqNo != 4 {
		t.Errorf("gap = %+v, want BeginSeqNo=1 EndSeqNo=4", gap)
	}
}

func TestGapRecovery_DuplicateBelowExpectation(t *testing.T) {
	g := NewGapRecovery("s1", 5)

	status, err := g.CheckMessage(3, false)
	if err != nil {
		t.Fatalf("CheckMessage() error = %v", err)
	}
	if status != GapStatusDuplicate {
		t.Errorf("status = %v, want GapStatusDuplicate", status)
	}
}

func TestGapRecovery_GapExceedingMaxIsAnError(t *testing.T) {
	g := NewGapRecovery("s1", 1)
	g.maxGapSize = 10

	_, err := g.CheckMessage(50, false)
	if err == nil {
		t.Fatal("expected an error for a gap exceeding the configured maximum")
	}
}

func TestGapRecovery_CatchingUpClearsCurrentGap(t *testing.T) {
	g := NewGapRecovery("s1", 1)
	if _, err := g.CheckMessage(3, false); err != nil {
		t.Fatalf("CheckMessage(3) error = %v", err)
	}
	if g.OpenGap() == nil {
		t.Fatal("expected an open gap after CheckMessage(3)")
	}

	// The next in-order message (4, matching the new expectation) clears it.
	if _, err := g.CheckMessage(4, false); err != nil {
		t.Fatalf("CheckMessage(4) error = %v", err)
	}
	if g.OpenGap() != nil {
		t.Error("expected the gap to be cleared once the session caught up")
	}
}
