package listview

import (
	"fmt"
	"sort"

	"tableflip.dev/fetchlist/pkg/record/viewmodel"
)

// RowKind tags a flat row as a group header or an item.
type RowKind int

const (
	// RowHeader is the single row representing a group.
	RowHeader RowKind = iota
	// RowItem is a record row under an expanded group.
	RowItem
)

func (k RowKind) String() string {
	switch k {
	case RowHeader:
		return "header"
	case RowItem:
		return "item"
	default:
		return fmt.Sprintf("RowKind(%d)", int(k))
	}
}

// Row is the logical address of a flat row. Offset is the item position
// within the group and is only meaningful for RowItem.
type Row struct {
	Kind    RowKind
	GroupID int
	Offset  int
}

// Header returns the header row for groupID.
func Header(groupID int) Row {
	return Row{Kind: RowHeader, GroupID: groupID}
}

// Item returns the item row at offset within groupID.
func Item(groupID, offset int) Row {
	return Row{Kind: RowItem, GroupID: groupID, Offset: offset}
}

// IsHeader reports whether r is a header row.
func (r Row) IsHeader() bool { return r.Kind == RowHeader }

func (r Row) String() string {
	if r.Kind == RowHeader {
		return fmt.Sprintf("Header(%d)", r.GroupID)
	}
	return fmt.Sprintf("Item(%d,%d)", r.GroupID, r.Offset)
}

// span is one group's slice of the flat row space: the header at start,
// followed by visible item rows.
type span struct {
	groupID int
	start   int
	visible int
}

// walk visits groups in ascending id order with their running flat offset
// until visit returns false, and returns the offset reached.
func walk(g *viewmodel.Grouped, s *State, visit func(span) bool) int {
	offset := 0
	if g == nil {
		return offset
	}
	for _, id := range g.IDs {
		items := 0
		if grp, ok := g.Groups[id]; ok {
			items = len(grp.Items)
		}
		visible := 0
		if s.IsExpanded(id) {
			visible = items
		}
		sp := span{groupID: id, start: offset, visible: visible}
		if !visit(sp) {
			return offset
		}
		offset += 1 + visible
	}
	return offset
}

// RowCount returns the number of flat rows: one header per group plus the
// items of every expanded group.
func RowCount(g *viewmodel.Grouped, s *State) int {
	return walk(g, s, func(span) bool { return true })
}

// RowAt resolves flatIndex to a header or item row. Indices outside
// [0, RowCount) yield a *BoundsError.
func RowAt(g *viewmodel.Grouped, s *State, flatIndex int) (Row, error) {
	var (
		row   Row
		found bool
	)
	walk(g, s, func(sp span) bool {
		if flatIndex < sp.start {
			return false
		}
		if flatIndex == sp.start {
			row, found = Header(sp.groupID), true
			return false
		}
		if flatIndex <= sp.start+sp.visible {
			row, found = Item(sp.groupID, flatIndex-(sp.start+1)), true
			return false
		}
		return true
	})
	if !found {
		return Row{}, &BoundsError{Index: flatIndex, Count: RowCount(g, s)}
	}
	return row, nil
}

// IndexOf is the inverse of RowAt: it returns the flat index of row.
func IndexOf(g *viewmodel.Grouped, s *State, row Row) (int, error) {
	index := -1
	walk(g, s, func(sp span) bool {
		if sp.groupID != row.GroupID {
			return true
		}
		switch row.Kind {
		case RowHeader:
			index = sp.start
		case RowItem:
			if row.Offset >= 0 && row.Offset < sp.visible {
				index = sp.start + 1 + row.Offset
			}
		}
		return false
	})
	if index < 0 {
		return -1, fmt.Errorf("%w: %s", ErrRowNotVisible, row)
	}
	return index, nil
}

// Layout caches per-group start offsets so RowAt can binary search instead
// of scanning groups. A Layout is only valid for the Grouped and State it was
// built from; rebuild it after any change to either.
type Layout struct {
	spans []span
	total int
}

// NewLayout precomputes group offsets for g under s.
func NewLayout(g *viewmodel.Grouped, s *State) *Layout {
	l := &Layout{}
	if g != nil {
		l.spans = make([]span, 0, len(g.IDs))
	}
	l.total = walk(g, s, func(sp span) bool {
		l.spans = append(l.spans, sp)
		return true
	})
	return l
}

// RowCount returns the cached flat row count.
func (l *Layout) RowCount() int {
	if l == nil {
		return 0
	}
	return l.total
}

// RowAt resolves flatIndex using the cached offsets.
func (l *Layout) RowAt(flatIndex int) (Row, error) {
	if l == nil || flatIndex < 0 || flatIndex >= l.total {
		return Row{}, &BoundsError{Index: flatIndex, Count: l.RowCount()}
	}
	// First span starting after flatIndex; the owner is the one before it.
	i := sort.Search(len(l.spans), func(i int) bool {
		return l.spans[i].start > flatIndex
	}) - 1
	sp := l.spans[i]
	if flatIndex == sp.start {
		return Header(sp.groupID), nil
	}
	return Item(sp.groupID, flatIndex-(sp.start+1)), nil
}

// HeaderIndex returns the flat index of groupID's header.
func (l *Layout) HeaderIndex(groupID int) (int, bool) {
	if l == nil {
		return -1, false
	}
	i := sort.Search(len(l.spans), func(i int) bool {
		return l.spans[i].groupID >= groupID
	})
	if i == len(l.spans) || l.spans[i].groupID != groupID {
		return -1, false
	}
	return l.spans[i].start, true
}
