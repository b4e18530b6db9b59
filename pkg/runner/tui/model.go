// Package tui renders a controller's grouped list as an interactive Bubble
// Tea program.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
	"github.com/sirupsen/logrus"

	"tableflip.dev/fetchlist/pkg/controller"
	"tableflip.dev/fetchlist/pkg/events"
	"tableflip.dev/fetchlist/pkg/listview"
	"tableflip.dev/fetchlist/pkg/logging"
	"tableflip.dev/fetchlist/pkg/source"
)

// chrome is the number of lines View spends outside the row window: title,
// status and footer.
const chrome = 3

type fileChangedMsg struct{ ev source.Event }

// Model is the Bubble Tea model for the list. The controller owns all list
// state; the model keeps only the cursor, scroll offset and input mode.
type Model struct {
	ctrl    *controller.Controller
	ctx     context.Context
	log     logrus.FieldLogger
	changes <-chan source.Event

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	cursor    int
	anchor    listview.Row
	hasAnchor bool
	offset    int

	width  int
	height int

	status events.Status
	err    error
	notice string

	searching bool
	query     string

	// collapseOnLoad folds every list once the first refresh lands.
	collapseOnLoad bool
}

// Option customises New.
type Option func(*Model)

// WithContext sets the context used for refreshes.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithChanges refreshes the list whenever an event arrives on ch.
func WithChanges(ch <-chan source.Event) Option {
	return func(m *Model) {
		m.changes = ch
	}
}

// WithCollapseAll starts with every list folded.
func WithCollapseAll(collapse bool) Option {
	return func(m *Model) {
		m.collapseOnLoad = collapse
	}
}

// New creates a model backed by ctrl.
func New(ctrl *controller.Controller, opts ...Option) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctrl:    ctrl,
		ctx:     context.Background(),
		log:     logging.Discard(),
		keys:    defaultKeys,
		help:    help.New(),
		spinner: sp,
		status:  ctrl.Status(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the first refresh and subscribes to controller events.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.ctrl.RefreshCmd(m.ctx),
		events.WaitCmd(m.ctrl.Events()),
		m.spinner.Tick,
	}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	return tea.Batch(cmds...)
}

func waitForChange(ch <-chan source.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return fileChangedMsg{ev: ev}
	}
}

// Update handles key presses and controller events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)

	case events.StatusMsg:
		m.status = msg.Status
		if msg.Status == events.StatusLoaded {
			m.err = nil
		}
		return m, events.WaitCmd(m.ctrl.Events())

	case events.DataChangedMsg:
		m.log.WithField("event", msg.Describe()).Debug("data changed")
		if m.collapseOnLoad && msg.Reason == events.ChangeRefresh {
			m.collapseOnLoad = false
			m.ctrl.SetAllExpanded(false)
		}
		m.restoreCursor()
		return m, events.WaitCmd(m.ctrl.Events())

	case events.FailedMsg:
		m.err = msg.Err
		return m, events.WaitCmd(m.ctrl.Events())

	case fileChangedMsg:
		if msg.ev.Err != nil {
			m.log.WithError(msg.ev.Err).Warn("watch error")
		} else {
			m.log.WithField("path", msg.ev.Path).Debug("source changed")
		}
		return m, tea.Batch(m.ctrl.RefreshCmd(m.ctx), waitForChange(m.changes))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.setCursor(m.cursor - 1)
	case key.Matches(msg, m.keys.Down):
		m.setCursor(m.cursor + 1)
	case key.Matches(msg, m.keys.Top):
		m.setCursor(0)
	case key.Matches(msg, m.keys.Bottom):
		m.setCursor(m.ctrl.RowCount() - 1)
	case key.Matches(msg, m.keys.Toggle):
		m.toggle()
	case key.Matches(msg, m.keys.ExpandAll):
		m.ctrl.SetAllExpanded(true)
		m.restoreCursor()
	case key.Matches(msg, m.keys.CollapseAll):
		if m.hasAnchor {
			m.anchor = listview.Header(m.anchor.GroupID)
		}
		m.ctrl.SetAllExpanded(false)
		m.restoreCursor()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.ctrl.RefreshCmd(m.ctx)
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.query = ""
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.searching = false
		m.query = ""
	case tea.KeyEnter:
		m.searching = false
		m.jump(m.query)
		m.query = ""
	case tea.KeyBackspace:
		if r := []rune(m.query); len(r) > 0 {
			m.query = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.query += " "
	case tea.KeyRunes:
		m.query += string(msg.Runes)
	}
	return m, nil
}

// toggle folds the group under the cursor. The cursor lands on that group's
// header so it never points at a row that just disappeared.
func (m *Model) toggle() {
	row, err := m.ctrl.RowAt(m.cursor)
	if err != nil {
		return
	}
	if _, err := m.ctrl.ToggleGroup(row.GroupID); err != nil {
		m.log.WithError(err).Debug("toggle failed")
		return
	}
	m.anchor, m.hasAnchor = listview.Header(row.GroupID), true
	m.restoreCursor()
}

type target struct {
	row  listview.Row
	text string
}

// jump moves the cursor to the best fuzzy match for query among list headers
// and item names, expanding the match's group if needed.
func (m *Model) jump(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	snap := m.ctrl.Snapshot()
	var targets []target
	if snap.Grouped != nil {
		for _, id := range snap.Grouped.IDs {
			targets = append(targets, target{row: listview.Header(id), text: fmt.Sprintf("List %d", id)})
			grp, _ := snap.Grouped.Group(id)
			for i, r := range grp.Items {
				targets = append(targets, target{row: listview.Item(id, i), text: r.DisplayName()})
			}
		}
	}
	texts := make([]string, len(targets))
	for i, t := range targets {
		texts[i] = t.text
	}

	matches := fuzzy.Find(query, texts)
	if len(matches) == 0 {
		m.notice = fmt.Sprintf("no match for %q", query)
		return
	}
	best := targets[matches[0].Index]
	if !best.row.IsHeader() && !m.ctrl.IsExpanded(best.row.GroupID) {
		if _, err := m.ctrl.ToggleGroup(best.row.GroupID); err != nil {
			m.log.WithError(err).Debug("expand for jump failed")
			return
		}
	}
	m.anchor, m.hasAnchor = best.row, true
	m.restoreCursor()
}

// setCursor clamps i to the visible rows and remembers the logical row under
// it, so the cursor can follow that row across later changes.
func (m *Model) setCursor(i int) {
	n := m.ctrl.RowCount()
	if n == 0 {
		m.cursor, m.offset, m.hasAnchor = 0, 0, false
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	m.cursor = i
	if row, err := m.ctrl.RowAt(i); err == nil {
		m.anchor, m.hasAnchor = row, true
	}
	m.scroll()
}

// restoreCursor puts the cursor back on the anchored row after the list
// changed. A hidden item falls back to its group header; a vanished group
// keeps the flat position.
func (m *Model) restoreCursor() {
	if !m.hasAnchor {
		m.setCursor(m.cursor)
		return
	}
	if idx, err := m.ctrl.IndexOf(m.anchor); err == nil {
		m.setCursor(idx)
		return
	}
	if !m.anchor.IsHeader() {
		if idx, err := m.ctrl.IndexOf(listview.Header(m.anchor.GroupID)); err == nil {
			m.setCursor(idx)
			return
		}
	}
	m.setCursor(m.cursor)
}

func (m *Model) bodyHeight() int {
	if m.height <= 0 {
		return 0
	}
	if h := m.height - chrome; h > 0 {
		return h
	}
	return 1
}

func (m *Model) scroll() {
	h := m.bodyHeight()
	if h == 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}
