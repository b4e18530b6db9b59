package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"

	"tableflip.dev/fetchlist/pkg/events"
	"tableflip.dev/fetchlist/pkg/listview"
)

const (
	expandedMarker  = "▾"
	collapsedMarker = "▸"
)

// View renders the title, status line, visible row window and footer.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("fetchlist"))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	n := m.ctrl.RowCount()
	if n == 0 && m.status != events.StatusLoading {
		b.WriteString(mutedStyle.Render("no items"))
		b.WriteString("\n")
	}

	start, end := 0, n
	if h := m.bodyHeight(); h > 0 {
		start = m.offset
		if start+h < end {
			end = start + h
		}
	}
	for i := start; i < end; i++ {
		row, err := m.ctrl.RowAt(i)
		if err != nil {
			break
		}
		line := m.renderRow(row)
		if m.width > 0 {
			line = truncate.StringWithTail(line, uint(m.width), "…")
		}
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.searching {
		b.WriteString(promptStyle.Render("/") + m.query)
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) statusLine() string {
	switch {
	case m.status == events.StatusLoading:
		return m.spinner.View() + " Loading…"
	case m.err != nil:
		return errorStyle.Render("Failed to load: " + m.err.Error())
	case m.notice != "":
		return mutedStyle.Render(m.notice)
	}
	return ""
}

func (m Model) renderRow(row listview.Row) string {
	grp, _ := m.ctrl.Group(row.GroupID)
	if row.IsHeader() {
		marker := collapsedMarker
		if m.ctrl.IsExpanded(row.GroupID) {
			marker = expandedMarker
		}
		return fmt.Sprintf("%s %s %s", marker,
			headerStyle.Render(fmt.Sprintf("List %d", row.GroupID)),
			mutedStyle.Render(fmt.Sprintf("(%d)", len(grp.Items))))
	}
	if row.Offset < 0 || row.Offset >= len(grp.Items) {
		return ""
	}
	r := grp.Items[row.Offset]
	return fmt.Sprintf("    %s%d  %s%d  %s%s",
		itemLabelStyle.Render("ID: "), r.ID,
		itemLabelStyle.Render("ListID: "), r.GroupID,
		itemLabelStyle.Render("Name: "), r.DisplayName())
}
