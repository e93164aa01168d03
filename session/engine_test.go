package session

import "testing"

func TestEngine_OpenRejectsDuplicateID(t *testing.T) {
	e := NewEngine(testDict())

	if _, err := e.Open(Config{ID: "dup"}); err != nil {
		t.Fatalf("first Open() error = %v", err)
	}
	if _, err := e.Open(Config{ID: "dup"}); err == nil {
		t.Fatal("expected an error opening a duplicate session ID, got nil")
	}
}

func TestEngine_CloseRemovesSession(t *testing.T) {
	e := NewEngine(testDict())
	if _, err := e.Open(Config{ID: "s1"}); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, ok := e.Get("s1"); !ok {
		t.Fatal("Get() after Open() = false, want true")
	}

	e.Close("s1")

	if _, ok := e.Get("s1"); ok {
		t.Fatal("Get() after Close() = true, want false")
	}
}

func TestEngine_CountAndSummaries(t *testing.T) {
	e := NewEngine(testDict())
	if _, err := e.Open(Config{ID: "a"}); err != nil {
		t.Fatalf("Open(a) error = %v", err)
	}
	if _, err := e.Open(Config{ID: "b"}); err != nil {
		t.Fatalf("Open(b) error = %v", err)
	}

	if got := e.Count(); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}

	summaries := e.Summaries()
	if len(summaries) != 2 {
		t.Fatalf("len(Summaries()) = %d, want 2", len(summaries))
	}
	ids := map[string]bool{}
	for _, s := range summaries {
		ids[s.ID] = true
	}
	if !ids["a"] || !ids["b"] {
		t.Errorf("Summaries() ids = %v, want both \"a\" and \"b\"", ids)
	}
}
