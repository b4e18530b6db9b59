package source

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"tableflip.dev/fetchlist/pkg/record"
)

func TestMultiConcatenatesInSourceOrder(t *testing.T) {
	a := Static([]record.Record{record.New(1, 1, "Item 1")})
	b := Static([]record.Record{record.New(2, 1, "Item 2"), record.New(3, 2, "Item 3")})

	records, err := NewMulti(a, b).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	var got []int
	for _, r := range records {
		got = append(got, r.ID)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestMultiFailsWhole(t *testing.T) {
	boom := &TransportError{Location: "b", Err: errors.New("boom")}
	a := Static([]record.Record{record.New(1, 1, "Item 1")})
	b := Func(func(context.Context) ([]record.Record, error) { return nil, boom })

	records, err := NewMulti(a, b).Fetch(context.Background())
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if records != nil {
		t.Fatalf("partial results returned: %v", records)
	}
}

func TestNewMultiUnwrapsSingle(t *testing.T) {
	a := Static(nil)
	if got := NewMulti(a); got == nil {
		t.Fatal("nil source")
	} else if _, ok := got.(*Multi); ok {
		t.Fatal("single source should not be wrapped")
	}
}

func TestFromLocations(t *testing.T) {
	dir := t.TempDir()
	src, err := FromLocations([]string{"https://example.com/a.json", filepath.Join(dir, "b.json")}, Options{})
	if err != nil {
		t.Fatalf("from locations: %v", err)
	}
	m, ok := src.(*Multi)
	if !ok || len(m.Sources) != 2 {
		t.Fatalf("expected two-member Multi, got %T", src)
	}
	if _, ok := m.Sources[0].(*HTTP); !ok {
		t.Fatalf("first member should be HTTP, got %T", m.Sources[0])
	}
	files := Files(src)
	if len(files) != 1 || files[0].Path != filepath.Join(dir, "b.json") {
		t.Fatalf("unexpected files %+v", files)
	}
	if Describe(src) != "https://example.com/a.json,"+filepath.Join(dir, "b.json") {
		t.Fatalf("unexpected description %q", Describe(src))
	}

	if _, err := FromLocations(nil, Options{}); err == nil {
		t.Fatal("expected error for no locations")
	}
	if _, err := FromLocation("  ", Options{}); err == nil {
		t.Fatal("expected error for blank location")
	}
}
