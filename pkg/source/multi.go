package source

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"tableflip.dev/fetchlist/pkg/record"
)

// Multi fetches several sources concurrently and concatenates their records
// in source order. The first failure fails the whole fetch; partial results
// are never returned.
type Multi struct {
	Sources []Source
}

// NewMulti combines sources. A single source is returned unwrapped.
func NewMulti(sources ...Source) Source {
	if len(sources) == 1 {
		return sources[0]
	}
	return &Multi{Sources: sources}
}

// Fetch runs every source under a shared errgroup context.
func (m *Multi) Fetch(ctx context.Context) ([]record.Record, error) {
	results := make([][]record.Record, len(m.Sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range m.Sources {
		i, src := i, src
		g.Go(func() error {
			records, err := src.Fetch(gctx)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	out := make([]record.Record, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

func (m *Multi) String() string {
	names := make([]string, 0, len(m.Sources))
	for _, src := range m.Sources {
		names = append(names, Describe(src))
	}
	return strings.Join(names, ",")
}
