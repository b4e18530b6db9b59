// Package source provides the fetch collaborators that supply raw records to
// a list controller.
package source

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/fetchlist/pkg/record"
)

// Source fetches the complete raw record list. Implementations must be safe
// for concurrent use; a controller may issue overlapping fetches.
type Source interface {
	Fetch(ctx context.Context) ([]record.Record, error)
}

// Func adapts a function into a Source.
type Func func(ctx context.Context) ([]record.Record, error)

// Fetch calls f.
func (f Func) Fetch(ctx context.Context) ([]record.Record, error) {
	return f(ctx)
}

// Static returns a Source that always yields a copy of records.
func Static(records []record.Record) Source {
	return Func(func(context.Context) ([]record.Record, error) {
		return append([]record.Record(nil), records...), nil
	})
}

// ErrFetch is matched by every error a Source in this package returns.
var ErrFetch = errors.New("source: fetch failed")

// TransportError reports that the records could not be retrieved or decoded.
type TransportError struct {
	Location string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("source: fetch %s: %v", e.Location, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFetch) hold.
func (e *TransportError) Is(target error) bool { return target == ErrFetch }

// UnsuccessfulResponseError reports a non-success status from the server.
type UnsuccessfulResponseError struct {
	Location   string
	StatusCode int
	Status     string
}

func (e *UnsuccessfulResponseError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d", e.StatusCode)
	}
	return fmt.Sprintf("source: fetch %s: unsuccessful response: %s", e.Location, status)
}

// Is makes errors.Is(err, ErrFetch) hold.
func (e *UnsuccessfulResponseError) Is(target error) bool { return target == ErrFetch }
