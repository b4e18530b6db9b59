package printers

import (
	"fmt"

	"github.com/gosuri/uitable"

	"tableflip.dev/fetchlist/pkg/listview"
	"tableflip.dev/fetchlist/pkg/record/viewmodel"
)

// Table prints the visible rows as aligned columns. Collapsed groups show a
// single summary line.
func (pp *PrettyPrint) Table(g *viewmodel.Grouped, s *listview.State) error {
	n := listview.RowCount(g, s)
	if n == 0 {
		pp.Empty()
		return nil
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	if pp.ShowID {
		tbl.AddRow("ROW", "LIST", "ID", "NAME")
	} else {
		tbl.AddRow("LIST", "ID", "NAME")
	}

	for i := 0; i < n; i++ {
		row, err := listview.RowAt(g, s, i)
		if err != nil {
			return err
		}
		grp, _ := g.Group(row.GroupID)

		var cells []interface{}
		switch row.Kind {
		case listview.RowHeader:
			if s.IsExpanded(row.GroupID) {
				continue
			}
			cells = []interface{}{row.GroupID, "-", fmt.Sprintf("(%d collapsed)", len(grp.Items))}
		case listview.RowItem:
			r := grp.Items[row.Offset]
			cells = []interface{}{r.GroupID, r.ID, r.DisplayName()}
		}
		if pp.ShowID {
			cells = append([]interface{}{i}, cells...)
		}
		tbl.AddRow(cells...)
	}

	_, err := fmt.Fprintln(pp.out(), tbl)
	return err
}
