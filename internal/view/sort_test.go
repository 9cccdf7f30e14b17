package view

import "testing"

func TestSortState_SameColumnCyclesTwoState(t *testing.T) {
	s := &SortState{}

	s.Toggle("value")
	if s.Column != "value" || s.Dir != DirDesc {
		t.Fatalf("expected value/desc after first toggle, got %s/%v", s.Column, s.Dir)
	}

	s.Toggle("value")
	if s.Dir != DirAsc {
		t.Fatalf("expected asc after second toggle, got %v", s.Dir)
	}

	// Two-state cycle wraps back to desc
	s.Toggle("value")
	if s.Dir != DirDesc {
		t.Fatalf("expected desc after third toggle, got %v", s.Dir)
	}
}

func TestSortState_ThreeStateCycleReturnsToOriginal(t *testing.T) {
	s := &SortState{AllowNone: true}

	s.Toggle("shares")
	s.Toggle("shares")
	if s.Dir != DirAsc {
		t.Fatalf("expected asc, got %v", s.Dir)
	}

	// Third click removes the sort entirely (original row order)
	s.Toggle("shares")
	if s.Active() {
		t.Errorf("expected inactive sort after full cycle, got %s/%v", s.Column, s.Dir)
	}
}

func TestSortState_DifferentColumnResetsToDefault(t *testing.T) {
	s := &SortState{}

	s.Toggle("value")
	s.Toggle("value") // now asc

	s.Toggle("shares")
	if s.Column != "shares" || s.Dir != DirDesc {
		t.Errorf("expected shares/desc after switching columns, got %s/%v", s.Column, s.Dir)
	}
}

func TestDirection_RoundTrip(t *testing.T) {
	for _, d := range []Direction{DirNone, DirDesc, DirAsc} {
		if got := ParseDirection(d.String()); got != d {
			t.Errorf("round trip failed for %v: got %v", d, got)
		}
	}
	if got := ParseDirection("bogus"); got != DirNone {
		t.Errorf("expected DirNone for unknown value, got %v", got)
	}
}
