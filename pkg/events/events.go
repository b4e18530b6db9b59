// Package events defines the notifications a list controller publishes to
// its renderers.
package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// Status is the lifecycle state of a list controller.
type Status string

const (
	// StatusEmpty means no refresh has been attempted.
	StatusEmpty Status = "empty"
	// StatusLoading means a fetch is in flight.
	StatusLoading Status = "loading"
	// StatusLoaded means the last applied fetch succeeded.
	StatusLoaded Status = "loaded"
	// StatusFailed means the last applied fetch failed.
	StatusFailed Status = "failed"
)

// ChangeReason says why the flat row mapping changed.
type ChangeReason string

const (
	// ChangeRefresh indicates new grouped data was stored.
	ChangeRefresh ChangeReason = "refresh"
	// ChangeToggle indicates a single group was expanded or collapsed.
	ChangeToggle ChangeReason = "toggle"
	// ChangeExpandAll indicates every group flag was set at once.
	ChangeExpandAll ChangeReason = "expand-all"
)

// DataChangedMsg tells renderers to re-query row count and rows.
type DataChangedMsg struct {
	Component  ComponentID
	Reason     ChangeReason
	Generation uint64
	// GroupID is set for ChangeToggle.
	GroupID  int
	Expanded bool
	Groups   int
	Rows     int
}

// Describe renders the change in a human-friendly format for logs.
func (m DataChangedMsg) Describe() string {
	if m.Reason == ChangeToggle {
		return fmt.Sprintf(`reason:%q group:%d expanded:%t rows:%d`, m.Reason, m.GroupID, m.Expanded, m.Rows)
	}
	return fmt.Sprintf(`reason:%q gen:%d groups:%d rows:%d`, m.Reason, m.Generation, m.Groups, m.Rows)
}

// FailedMsg reports a refresh that could not fetch records. Previously
// loaded data is left in place.
type FailedMsg struct {
	Component  ComponentID
	Generation uint64
	Err        error
}

// Describe renders the failure in a human-friendly format for logs.
func (m FailedMsg) Describe() string {
	return fmt.Sprintf(`gen:%d err:%q`, m.Generation, errString(m.Err))
}

// StatusMsg announces a lifecycle transition.
type StatusMsg struct {
	Component ComponentID
	Status    Status
}

// Describe renders the transition in a human-friendly format for logs.
func (m StatusMsg) Describe() string {
	return fmt.Sprintf(`status:%q`, m.Status)
}

// Describer is implemented by every message in this package.
type Describer interface {
	Describe() string
}

// WaitCmd blocks on ch and delivers the next message to the Bubble Tea
// program. It returns nil once ch is closed.
func WaitCmd(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
