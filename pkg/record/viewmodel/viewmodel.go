package viewmodel

import (
	"sort"
	"strconv"
	"strings"

	"tableflip.dev/fetchlist/pkg/record"
)

// DefaultSuffixPrefix is stripped from a record name before its numeric
// suffix is parsed.
const DefaultSuffixPrefix = "Item "

// Group holds every named record sharing a group id, in display order.
type Group struct {
	GroupID int
	Items   []record.Record
}

// Grouped is the display-ready form of a fetched record list. IDs is sorted
// ascending and lists exactly the keys of Groups.
type Grouped struct {
	IDs    []int
	Groups map[int]*Group
}

// Option customises Process behaviour.
type Option func(*processOptions)

// WithSuffixPrefix overrides the literal prefix stripped before parsing the
// numeric sort key out of a record name.
func WithSuffixPrefix(prefix string) Option {
	return func(opts *processOptions) {
		opts.prefix = prefix
	}
}

type processOptions struct {
	prefix string
}

// Process filters out unnamed records, orders the rest by group id and the
// numeric suffix of their name, and partitions them into groups. It never
// fails; names without a parsable suffix sort with key 0.
func Process(records []record.Record, opts ...Option) *Grouped {
	config := &processOptions{prefix: DefaultSuffixPrefix}
	for _, opt := range opts {
		opt(config)
	}

	type keyed struct {
		rec    record.Record
		suffix int
	}
	named := make([]keyed, 0, len(records))
	for _, rec := range records {
		if !rec.HasName() {
			continue
		}
		named = append(named, keyed{rec: rec, suffix: numericSuffix(*rec.Name, config.prefix)})
	}

	sort.SliceStable(named, func(i, j int) bool {
		if named[i].rec.GroupID != named[j].rec.GroupID {
			return named[i].rec.GroupID < named[j].rec.GroupID
		}
		return named[i].suffix < named[j].suffix
	})

	out := &Grouped{Groups: make(map[int]*Group)}
	for _, k := range named {
		g, ok := out.Groups[k.rec.GroupID]
		if !ok {
			g = &Group{GroupID: k.rec.GroupID}
			out.Groups[k.rec.GroupID] = g
			out.IDs = append(out.IDs, k.rec.GroupID)
		}
		g.Items = append(g.Items, k.rec)
	}
	sort.Ints(out.IDs)
	return out
}

// NumericSuffix returns the sort key Process uses for name with the default
// prefix.
func NumericSuffix(name string) int {
	return numericSuffix(name, DefaultSuffixPrefix)
}

func numericSuffix(name, prefix string) int {
	trimmed := strings.TrimSpace(strings.TrimPrefix(name, prefix))
	n, err := strconv.ParseInt(trimmed, 10, 32)
	if err != nil {
		return 0
	}
	return int(n)
}

// Len returns the number of groups.
func (g *Grouped) Len() int {
	if g == nil {
		return 0
	}
	return len(g.IDs)
}

// Group returns the group for id.
func (g *Grouped) Group(id int) (*Group, bool) {
	if g == nil {
		return nil, false
	}
	grp, ok := g.Groups[id]
	return grp, ok
}

// ItemCount returns the number of records across all groups.
func (g *Grouped) ItemCount() int {
	if g == nil {
		return 0
	}
	total := 0
	for _, grp := range g.Groups {
		total += len(grp.Items)
	}
	return total
}

// Records flattens the groups back into display order.
func (g *Grouped) Records() []record.Record {
	if g == nil {
		return nil
	}
	out := make([]record.Record, 0, g.ItemCount())
	for _, id := range g.IDs {
		out = append(out, g.Groups[id].Items...)
	}
	return out
}
