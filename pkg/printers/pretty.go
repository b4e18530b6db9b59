package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/fetchlist/pkg/listview"
	"tableflip.dev/fetchlist/pkg/record"
	"tableflip.dev/fetchlist/pkg/record/viewmodel"
)

const (
	expandedMarker  = "▾"
	collapsedMarker = "▸"
)

type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("#0000  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return os.Stdout
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Header prints a group title with its fold marker and item count.
func (pp *PrettyPrint) Header(row int, groupID int, expanded bool, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)
	w := pp.out()

	pp.gutter(row)
	marker := collapsedMarker
	if expanded {
		marker = expandedMarker
	}
	_, _ = c.Fprint(w, marker+" ")
	_, _ = t.Fprintf(w, "List %d", groupID)
	_, _ = c.Fprintf(w, " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(w, " item")
	default:
		_, _ = c.Fprintln(w, " items")
	}
}

// Item prints one record the way the list shows it.
func (pp *PrettyPrint) Item(row int, r record.Record) {
	l := color.New(color.Faint)
	v := color.New()
	w := pp.out()

	pp.gutter(row)
	_, _ = v.Fprint(w, "  ")
	_, _ = l.Fprint(w, "ID: ")
	_, _ = v.Fprintf(w, "%d  ", r.ID)
	_, _ = l.Fprint(w, "ListID: ")
	_, _ = v.Fprintf(w, "%d  ", r.GroupID)
	_, _ = l.Fprint(w, "Name: ")
	_, _ = v.Fprintln(w, r.DisplayName())
}

func (pp *PrettyPrint) Empty() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " no items\n")
}

// List walks every visible row of g under s and prints it.
func (pp *PrettyPrint) List(g *viewmodel.Grouped, s *listview.State) error {
	n := listview.RowCount(g, s)
	if n == 0 {
		pp.Empty()
		return nil
	}
	for i := 0; i < n; i++ {
		row, err := listview.RowAt(g, s, i)
		if err != nil {
			return err
		}
		grp, _ := g.Group(row.GroupID)
		switch row.Kind {
		case listview.RowHeader:
			if i > 0 {
				pp.NewLine()
			}
			pp.Header(i, row.GroupID, s.IsExpanded(row.GroupID), len(grp.Items))
		case listview.RowItem:
			pp.Item(i, grp.Items[row.Offset])
		}
	}
	return nil
}

func (pp *PrettyPrint) gutter(row int) {
	if !pp.ShowID {
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	id := fmt.Sprintf("#%d", row)
	pad := len(spacing) - len(id)
	if pad < 1 {
		pad = 1
	}
	_, _ = y.Fprint(pp.out(), id+strings.Repeat(" ", pad))
}
