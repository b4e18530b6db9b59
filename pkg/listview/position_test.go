package listview

import (
	"errors"
	"strconv"
	"testing"

	"tableflip.dev/fetchlist/pkg/record"
	"tableflip.dev/fetchlist/pkg/record/viewmodel"
)

// groupedOf builds a grouped result with the given item counts per group id.
func groupedOf(sizes map[int]int) *viewmodel.Grouped {
	var recs []record.Record
	id := 0
	for group, n := range sizes {
		for i := 0; i < n; i++ {
			id++
			recs = append(recs, record.New(id, group, "Item "+strconv.Itoa(i)))
		}
	}
	return viewmodel.Process(recs)
}

func TestEndToEndExampleRows(t *testing.T) {
	g := viewmodel.Process([]record.Record{
		record.New(1, 2, "Item 3"),
		record.New(2, 1, ""),
		record.New(3, 2, "Item 1"),
	})
	s := NewState()
	s.EnsureTracked(g.IDs)

	if got := RowCount(g, s); got != 3 {
		t.Fatalf("RowCount = %d, want 3", got)
	}
	want := []Row{Header(2), Item(2, 0), Item(2, 1)}
	for i, w := range want {
		got, err := RowAt(g, s, i)
		if err != nil {
			t.Fatalf("RowAt(%d): %v", i, err)
		}
		if got != w {
			t.Fatalf("RowAt(%d) = %s, want %s", i, got, w)
		}
	}
	if id := g.Groups[2].Items[0].ID; id != 3 {
		t.Fatalf("Item(2,0) should be record 3, got %d", id)
	}
	if id := g.Groups[2].Items[1].ID; id != 1 {
		t.Fatalf("Item(2,1) should be record 1, got %d", id)
	}
}

func TestRowCountTracksExpansion(t *testing.T) {
	g := groupedOf(map[int]int{1: 5, 2: 3, 7: 1})
	s := NewState()
	s.EnsureTracked(g.IDs)

	full := RowCount(g, s)
	if full != 3+5+3+1 {
		t.Fatalf("RowCount = %d, want %d", full, 12)
	}
	s.Toggle(1)
	if got := RowCount(g, s); got != full-5 {
		t.Fatalf("collapsing 5 items: RowCount = %d, want %d", got, full-5)
	}
	s.Toggle(1)
	if got := RowCount(g, s); got != full {
		t.Fatalf("re-expanding: RowCount = %d, want %d", got, full)
	}
}

func TestRowAtCollapsedHeadersAreAdjacent(t *testing.T) {
	g := groupedOf(map[int]int{1: 2, 2: 2, 3: 2})
	s := NewState()
	s.SetExpanded(2, false)

	want := []Row{
		Header(1), Item(1, 0), Item(1, 1),
		Header(2),
		Header(3), Item(3, 0), Item(3, 1),
	}
	if got := RowCount(g, s); got != len(want) {
		t.Fatalf("RowCount = %d, want %d", got, len(want))
	}
	for i, w := range want {
		got, err := RowAt(g, s, i)
		if err != nil {
			t.Fatalf("RowAt(%d): %v", i, err)
		}
		if got != w {
			t.Fatalf("RowAt(%d) = %s, want %s", i, got, w)
		}
	}
}

func TestRowAtRejectsOutOfRange(t *testing.T) {
	g := groupedOf(map[int]int{1: 2})
	s := NewState()
	for _, idx := range []int{-1, 3, 100} {
		_, err := RowAt(g, s, idx)
		if !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("RowAt(%d) error = %v, want ErrOutOfBounds", idx, err)
		}
		var be *BoundsError
		if !errors.As(err, &be) || be.Index != idx || be.Count != 3 {
			t.Fatalf("RowAt(%d) unexpected bounds error %#v", idx, be)
		}
	}
	if _, err := RowAt(nil, s, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("RowAt on empty result: %v", err)
	}
}

func TestRowAtRoundTripsThroughIndexOf(t *testing.T) {
	g := groupedOf(map[int]int{1: 4, 3: 0, 4: 7, 9: 2, 11: 1})
	states := []*State{NewState(), NewState(), NewState()}
	states[1].SetExpanded(4, false)
	for _, id := range g.IDs {
		states[2].SetExpanded(id, false)
	}

	for si, s := range states {
		n := RowCount(g, s)
		for i := 0; i < n; i++ {
			row, err := RowAt(g, s, i)
			if err != nil {
				t.Fatalf("state %d: RowAt(%d) returned %v for an in-range index", si, i, err)
			}
			back, err := IndexOf(g, s, row)
			if err != nil {
				t.Fatalf("state %d: IndexOf(%s): %v", si, row, err)
			}
			if back != i {
				t.Fatalf("state %d: round trip %d -> %s -> %d", si, i, row, back)
			}
		}
	}
}

func TestIndexOfHiddenRows(t *testing.T) {
	g := groupedOf(map[int]int{1: 2, 2: 2})
	s := NewState()
	s.SetExpanded(1, false)

	if _, err := IndexOf(g, s, Item(1, 0)); !errors.Is(err, ErrRowNotVisible) {
		t.Fatalf("collapsed item: %v", err)
	}
	if _, err := IndexOf(g, s, Item(2, 2)); !errors.Is(err, ErrRowNotVisible) {
		t.Fatalf("offset past end: %v", err)
	}
	if _, err := IndexOf(g, s, Header(5)); !errors.Is(err, ErrRowNotVisible) {
		t.Fatalf("unknown group: %v", err)
	}
	if idx, err := IndexOf(g, s, Header(2)); err != nil || idx != 1 {
		t.Fatalf("IndexOf(Header(2)) = %d, %v; want 1", idx, err)
	}
}

func TestLayoutAgreesWithLinearScan(t *testing.T) {
	g := groupedOf(map[int]int{2: 3, 5: 1, 6: 8, 10: 2})
	s := NewState()
	s.SetExpanded(6, false)

	l := NewLayout(g, s)
	if l.RowCount() != RowCount(g, s) {
		t.Fatalf("layout count %d != linear count %d", l.RowCount(), RowCount(g, s))
	}
	for i := -1; i <= l.RowCount(); i++ {
		want, wantErr := RowAt(g, s, i)
		got, gotErr := l.RowAt(i)
		if (wantErr == nil) != (gotErr == nil) {
			t.Fatalf("index %d: linear err %v, layout err %v", i, wantErr, gotErr)
		}
		if got != want {
			t.Fatalf("index %d: linear %s, layout %s", i, want, got)
		}
	}
	if idx, ok := l.HeaderIndex(10); !ok || idx != 7 {
		t.Fatalf("HeaderIndex(10) = %d, %v", idx, ok)
	}
	if _, ok := l.HeaderIndex(4); ok {
		t.Fatal("HeaderIndex for unknown group should fail")
	}
}

func TestNilLayout(t *testing.T) {
	var l *Layout
	if l.RowCount() != 0 {
		t.Fatal("nil layout should be empty")
	}
	if _, err := l.RowAt(0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("nil layout RowAt: %v", err)
	}
}
