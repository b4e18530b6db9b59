package config

import (
	"fmt"
	"strconv"
	"strings"
)

// cleanList trims entries, drops blanks and splits comma-separated values so
// FETCHLIST_SOURCES="a,b" works like a YAML list.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, raw := range in {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ParseIDs parses a comma or space separated list of group ids.
func ParseIDs(raw string) ([]int, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid group id %q", f)
		}
		out = append(out, n)
	}
	return out, nil
}

// toInts accepts the shapes viper produces for a list of ids: a YAML list,
// a string from the environment, or nothing.
func toInts(v interface{}) ([]int, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []int:
		return append([]int(nil), t...), nil
	case string:
		return ParseIDs(t)
	case []string:
		return ParseIDs(strings.Join(t, ","))
	case []interface{}:
		out := make([]int, 0, len(t))
		for _, item := range t {
			switch n := item.(type) {
			case int:
				out = append(out, n)
			case int64:
				out = append(out, int(n))
			case float64:
				out = append(out, int(n))
			case string:
				ids, err := ParseIDs(n)
				if err != nil {
					return nil, err
				}
				out = append(out, ids...)
			default:
				return nil, fmt.Errorf("unsupported id %v (%T)", item, item)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value %v (%T)", v, v)
	}
}
