package picker

import (
	"reflect"
	"testing"
)

func TestSelectionKeepsOrderAndUniqueness(t *testing.T) {
	s := NewSelection("MSFT", "AAPL", "MSFT")
	if got := s.Items(); !reflect.DeepEqual(got, []string{"MSFT", "AAPL"}) {
		t.Fatalf("items = %v", got)
	}
	s.Add("NVDA")
	s.Remove("MSFT")
	if got := s.Items(); !reflect.DeepEqual(got, []string{"AAPL", "NVDA"}) {
		t.Fatalf("items = %v", got)
	}
	if !s.Contains("NVDA") || s.Contains("MSFT") {
		t.Fatalf("contains is stale")
	}
	s.Remove("AAPL")
	if got := s.Items(); !reflect.DeepEqual(got, []string{"NVDA"}) {
		t.Fatalf("items = %v", got)
	}
}

func TestMirrorCommitIdempotent(t *testing.T) {
	s := newRecordingSurface()
	m := NewMirror(nil, s)
	if !m.Commit("AAPL") {
		t.Fatalf("first commit should add")
	}
	if m.Commit("AAPL") {
		t.Fatalf("second commit should be a no-op")
	}
	if got := m.Selection().Items(); !reflect.DeepEqual(got, []string{"AAPL"}) {
		t.Fatalf("selection = %v", got)
	}
	if !reflect.DeepEqual(s.chips, []string{"AAPL"}) || !s.chipsShown {
		t.Fatalf("chips = %v shown=%v", s.chips, s.chipsShown)
	}
}

func TestMirrorCommitRemoveInverse(t *testing.T) {
	s := newRecordingSurface()
	m := NewMirror(NewSelection("MSFT", "NVDA"), s)
	before := m.Selection().Items()
	m.Commit("AAPL")
	m.Remove("AAPL")
	if got := m.Selection().Items(); !reflect.DeepEqual(got, before) {
		t.Fatalf("selection = %v, want %v", got, before)
	}
	if !reflect.DeepEqual(s.chips, before) {
		t.Fatalf("chips = %v, want %v", s.chips, before)
	}
}

func TestMirrorRemoveKeepsContainerWhileMembersRemain(t *testing.T) {
	s := newRecordingSurface()
	m := NewMirror(NewSelection("AAPL", "MSFT"), s)
	m.Remove("AAPL")
	if got := m.Selection().Items(); !reflect.DeepEqual(got, []string{"MSFT"}) {
		t.Fatalf("selection = %v", got)
	}
	if !s.chipsShown {
		t.Fatalf("chip container should stay visible")
	}
}

func TestMirrorRemoveLastHidesContainer(t *testing.T) {
	s := newRecordingSurface()
	m := NewMirror(NewSelection("MSFT"), s)
	if !s.chipsShown {
		t.Fatalf("seeded selection should show chips")
	}
	m.Remove("MSFT")
	if m.Selection().Len() != 0 || s.chipsShown || len(s.chips) != 0 {
		t.Fatalf("len=%d shown=%v chips=%v", m.Selection().Len(), s.chipsShown, s.chips)
	}
}

func TestMirrorRemoveUnknownIsNoop(t *testing.T) {
	s := newRecordingSurface()
	m := NewMirror(NewSelection("MSFT"), s)
	calls := len(s.calls)
	if m.Remove("ZZZ") {
		t.Fatalf("remove of non-member reported a change")
	}
	if len(s.calls) != calls {
		t.Fatalf("no-op remove touched the surface: %v", s.calls[calls:])
	}
}

func TestMirrorAcceptsIdentifiersOutsideCatalog(t *testing.T) {
	m := NewMirror(nil, nil)
	m.Commit("NOT-IN-CATALOG")
	if !m.Selection().Contains("NOT-IN-CATALOG") {
		t.Fatalf("commit rejected unknown identifier")
	}
	m.Remove("NOT-IN-CATALOG")
	if m.Selection().Len() != 0 {
		t.Fatalf("remove rejected unknown identifier")
	}
}
