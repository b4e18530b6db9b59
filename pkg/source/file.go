package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"tableflip.dev/fetchlist/pkg/record"
)

// File reads a JSON array of records from a local path.
type File struct {
	Path string
}

// NewFile returns a File source. A leading "~" and a "file://" scheme are
// resolved.
func NewFile(path string) (*File, error) {
	path = strings.TrimPrefix(path, "file://")
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("source: expand %q: %w", path, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return nil, fmt.Errorf("source: resolve %q: %w", expanded, err)
	}
	return &File{Path: abs}, nil
}

// Fetch reads and decodes the file. Both read and decode failures are
// reported as *TransportError.
func (f *File) Fetch(ctx context.Context) ([]record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Location: f.Path, Err: err}
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, &TransportError{Location: f.Path, Err: err}
	}
	records, err := record.UnmarshalList(data)
	if err != nil {
		return nil, &TransportError{Location: f.Path, Err: err}
	}
	return records, nil
}

func (f *File) String() string { return f.Path }
