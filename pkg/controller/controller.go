// Package controller owns a grouped record list and its fold state, refreshes
// it from a source, and answers flat-row queries for renderers.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"tableflip.dev/fetchlist/pkg/events"
	"tableflip.dev/fetchlist/pkg/listview"
	"tableflip.dev/fetchlist/pkg/logging"
	"tableflip.dev/fetchlist/pkg/record"
	"tableflip.dev/fetchlist/pkg/record/viewmodel"
	"tableflip.dev/fetchlist/pkg/source"
)

// ErrUnknownGroup is returned when toggling a group that is not part of the
// loaded data.
var ErrUnknownGroup = errors.New("controller: unknown group")

// Snapshot is a consistent, immutable view of controller state.
type Snapshot struct {
	Grouped    *viewmodel.Grouped
	State      *listview.State
	Status     events.Status
	Err        error
	Generation uint64
}

// RowCount returns the flat row count for the snapshot.
func (s Snapshot) RowCount() int {
	return listview.RowCount(s.Grouped, s.State)
}

// RowAt resolves a flat index against the snapshot.
func (s Snapshot) RowAt(flatIndex int) (listview.Row, error) {
	return listview.RowAt(s.Grouped, s.State, flatIndex)
}

// Controller is the single owner and mutator of a grouped record list and
// its fold state. All state is guarded by one lock; fetches run outside it.
// Events are emitted in the order state changes are applied.
type Controller struct {
	component events.ComponentID
	src       source.Source
	log       logrus.FieldLogger
	process   []viewmodel.Option

	mu sync.RWMutex

	grouped *viewmodel.Grouped
	state   *listview.State
	layout  *listview.Layout
	status  events.Status
	lastErr error

	// issued counts Refresh calls; applied is the generation of the newest
	// fetch whose outcome was stored.
	issued  uint64
	applied uint64

	eventCh chan tea.Msg
}

// Option customises New.
type Option func(*Controller)

// WithComponent sets the component id stamped on emitted events.
func WithComponent(id events.ComponentID) Option {
	return func(c *Controller) {
		if id != "" {
			c.component = id
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithProcessOptions forwards options to viewmodel.Process on every refresh.
func WithProcessOptions(opts ...viewmodel.Option) Option {
	return func(c *Controller) {
		c.process = append(c.process, opts...)
	}
}

// WithState seeds the fold state, e.g. with groups that start collapsed.
func WithState(s *listview.State) Option {
	return func(c *Controller) {
		if s != nil {
			c.state = s.Clone()
		}
	}
}

// WithEventBuffer sets the capacity of the event channel.
func WithEventBuffer(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.eventCh = make(chan tea.Msg, n)
		}
	}
}

// New creates an empty controller fetching from src.
func New(src source.Source, opts ...Option) *Controller {
	c := &Controller{
		component: events.ComponentID("list"),
		src:       src,
		log:       logging.Discard(),
		state:     listview.NewState(),
		status:    events.StatusEmpty,
		eventCh:   make(chan tea.Msg, 64),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithField("component", string(c.component))
	return c
}

// Events exposes the event channel for renderers and Bubble Tea
// subscriptions.
func (c *Controller) Events() <-chan tea.Msg {
	return c.eventCh
}

// Refresh fetches records, processes them and stores the result, emitting a
// DataChangedMsg. On failure it emits a FailedMsg, keeps previously loaded
// data and returns the fetch error. A response older than one already
// applied is discarded.
func (c *Controller) Refresh(ctx context.Context) error {
	if c.src == nil {
		return errors.New("controller: no source configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	c.mu.Lock()
	c.issued++
	gen := c.issued
	c.setStatusLocked(events.StatusLoading)
	c.mu.Unlock()

	log := c.log.WithField("generation", gen)
	log.WithField("source", source.Describe(c.src)).Debug("fetching records")

	records, err := c.src.Fetch(ctx)

	var grouped *viewmodel.Grouped
	if err == nil {
		grouped = viewmodel.Process(records, c.process...)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen < c.applied {
		log.WithField("applied", c.applied).Info("discarding stale fetch result")
		return nil
	}
	c.applied = gen

	if err != nil {
		c.lastErr = err
		if gen == c.issued {
			c.setStatusLocked(events.StatusFailed)
		}
		log.WithError(err).Warn("refresh failed")
		c.emit(events.FailedMsg{
			Component:  c.component,
			Generation: gen,
			Err:        err,
		})
		return fmt.Errorf("controller: refresh: %w", err)
	}

	c.state.EnsureTracked(grouped.IDs)
	c.grouped = grouped
	c.layout = nil
	c.lastErr = nil
	if gen == c.issued {
		c.setStatusLocked(events.StatusLoaded)
	}
	log.WithFields(logrus.Fields{
		"records": len(records),
		"items":   grouped.ItemCount(),
		"groups":  grouped.Len(),
	}).Info("refresh applied")
	c.emit(events.DataChangedMsg{
		Component:  c.component,
		Reason:     events.ChangeRefresh,
		Generation: gen,
		Groups:     grouped.Len(),
		Rows:       c.layoutLocked().RowCount(),
	})
	return nil
}

// RefreshCmd runs Refresh as a Bubble Tea command. Its outcome is delivered
// through Events, so the command itself yields no message.
func (c *Controller) RefreshCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		_ = c.Refresh(ctx)
		return nil
	}
}

// ToggleGroup flips the fold flag for groupID and returns the new value.
func (c *Controller) ToggleGroup(groupID int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.grouped.Group(groupID); !ok {
		return false, fmt.Errorf("%w: %d", ErrUnknownGroup, groupID)
	}
	expanded := c.state.Toggle(groupID)
	c.layout = nil
	c.log.WithFields(logrus.Fields{"group": groupID, "expanded": expanded}).Debug("group toggled")
	c.emit(events.DataChangedMsg{
		Component: c.component,
		Reason:    events.ChangeToggle,
		GroupID:   groupID,
		Expanded:  expanded,
		Groups:    c.grouped.Len(),
		Rows:      c.layoutLocked().RowCount(),
	})
	return expanded, nil
}

// SetAllExpanded sets every loaded group's flag at once.
func (c *Controller) SetAllExpanded(expanded bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.grouped.Len() == 0 {
		return
	}
	for _, id := range c.grouped.IDs {
		c.state.SetExpanded(id, expanded)
	}
	c.layout = nil
	c.emit(events.DataChangedMsg{
		Component: c.component,
		Reason:    events.ChangeExpandAll,
		Expanded:  expanded,
		Groups:    c.grouped.Len(),
		Rows:      c.layoutLocked().RowCount(),
	})
}

// RowCount returns the current number of flat rows.
func (c *Controller) RowCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layoutLocked().RowCount()
}

// RowAt resolves flatIndex against the current state.
func (c *Controller) RowAt(flatIndex int) (listview.Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layoutLocked().RowAt(flatIndex)
}

// IndexOf returns the flat index of row in the current state.
func (c *Controller) IndexOf(row listview.Row) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return listview.IndexOf(c.grouped, c.state, row)
}

// IsExpanded reports the fold flag for groupID.
func (c *Controller) IsExpanded(groupID int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.IsExpanded(groupID)
}

// Group returns a loaded group.
func (c *Controller) Group(groupID int) (viewmodel.Group, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	grp, ok := c.grouped.Group(groupID)
	if !ok {
		return viewmodel.Group{}, false
	}
	return *grp, true
}

// Record returns the record addressed by an item row.
func (c *Controller) Record(row listview.Row) (record.Record, bool) {
	if row.Kind != listview.RowItem {
		return record.Record{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	grp, ok := c.grouped.Group(row.GroupID)
	if !ok || row.Offset < 0 || row.Offset >= len(grp.Items) {
		return record.Record{}, false
	}
	return grp.Items[row.Offset], true
}

// Status returns the lifecycle state.
func (c *Controller) Status() events.Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Snapshot returns a copy of the current state. The grouped result is shared
// and must be treated as immutable; the fold state is cloned.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		Grouped:    c.grouped,
		State:      c.state.Clone(),
		Status:     c.status,
		Err:        c.lastErr,
		Generation: c.applied,
	}
}

// layoutLocked returns the cached layout, rebuilding it if a structural
// change dropped it. Callers must hold the write lock.
func (c *Controller) layoutLocked() *listview.Layout {
	if c.layout == nil {
		c.layout = listview.NewLayout(c.grouped, c.state)
	}
	return c.layout
}

func (c *Controller) setStatusLocked(status events.Status) {
	if c.status == status {
		return
	}
	c.status = status
	c.emit(events.StatusMsg{Component: c.component, Status: status})
}

func (c *Controller) emit(msg tea.Msg) {
	select {
	case c.eventCh <- msg:
	default:
		if d, ok := msg.(events.Describer); ok {
			c.log.WithField("event", d.Describe()).Debug("event buffer full, dropping")
		}
	}
}
