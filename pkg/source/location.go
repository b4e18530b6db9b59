package source

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Options configures sources built from location strings.
type Options struct {
	Timeout   time.Duration
	UserAgent string
}

// FromLocation returns an HTTP source for http(s) URLs and a File source for
// anything else.
func FromLocation(loc string, opts Options) (Source, error) {
	loc = strings.TrimSpace(loc)
	if loc == "" {
		return nil, errors.New("source: empty location")
	}
	lower := strings.ToLower(loc)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewHTTP(loc, WithTimeout(opts.Timeout), WithUserAgent(opts.UserAgent)), nil
	}
	f, err := NewFile(loc)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// FromLocations builds one Source from several locations.
func FromLocations(locs []string, opts Options) (Source, error) {
	if len(locs) == 0 {
		return nil, errors.New("source: no locations configured")
	}
	sources := make([]Source, 0, len(locs))
	for _, loc := range locs {
		src, err := FromLocation(loc, opts)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return NewMulti(sources...), nil
}

// Describe names a source for logs.
func Describe(src Source) string {
	if s, ok := src.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", src)
}

// Files returns every File among src and, for a Multi, its members.
func Files(src Source) []*File {
	switch s := src.(type) {
	case *File:
		return []*File{s}
	case *Multi:
		var out []*File
		for _, member := range s.Sources {
			out = append(out, Files(member)...)
		}
		return out
	default:
		return nil
	}
}
