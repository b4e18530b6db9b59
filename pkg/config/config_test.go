package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/fetchlist/pkg/source"
)

func TestDefaults(t *testing.T) {
	cfg, err := FromViper(New())
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if diff := cmp.Diff([]string{source.DefaultURL}, cfg.Sources()); diff != "" {
		t.Fatalf("sources (-want +got):\n%s", diff)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Fatalf("timeout = %s", cfg.Timeout())
	}
	if cfg.SuffixPrefix() != "Item " || cfg.LogLevel() != "warn" || cfg.UserAgent() != "fetchlist" {
		t.Fatalf("unexpected defaults: %q %q %q", cfg.SuffixPrefix(), cfg.LogLevel(), cfg.UserAgent())
	}
	if len(cfg.Collapsed()) != 0 {
		t.Fatalf("collapsed = %v", cfg.Collapsed())
	}
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fetchlist.yaml")
	body := `
sources:
  - ./a.json
  - https://example.com/b.json
timeout: 5s
suffix-prefix: "Task "
collapsed: [2, 3]
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"./a.json", "https://example.com/b.json"}, cfg.Sources()); diff != "" {
		t.Fatalf("sources (-want +got):\n%s", diff)
	}
	if cfg.Timeout() != 5*time.Second {
		t.Fatalf("timeout = %s", cfg.Timeout())
	}
	if cfg.SuffixPrefix() != "Task " {
		t.Fatalf("suffix prefix = %q", cfg.SuffixPrefix())
	}
	if diff := cmp.Diff([]int{2, 3}, cfg.Collapsed()); diff != "" {
		t.Fatalf("collapsed (-want +got):\n%s", diff)
	}
	if cfg.File() != path {
		t.Fatalf("file = %q", cfg.File())
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadWithoutFileUsesEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FETCHLIST_CONFIG_PATH", dir)
	t.Setenv("HOME", dir)
	t.Setenv("FETCHLIST_SOURCES", "one.json, two.json")
	t.Setenv("FETCHLIST_COLLAPSED", "4,5")
	t.Setenv("FETCHLIST_USER_AGENT", "agent/1")

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(wd) }()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.File() != "" {
		t.Fatalf("expected no config file, got %q", cfg.File())
	}
	if diff := cmp.Diff([]string{"one.json", "two.json"}, cfg.Sources()); diff != "" {
		t.Fatalf("sources (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{4, 5}, cfg.Collapsed()); diff != "" {
		t.Fatalf("collapsed (-want +got):\n%s", diff)
	}
	if cfg.UserAgent() != "agent/1" {
		t.Fatalf("user agent = %q", cfg.UserAgent())
	}
}

func TestFromViperRejectsEmptySources(t *testing.T) {
	v := New()
	v.Set(KeySources, []string{" ", ""})
	if _, err := FromViper(v); err == nil {
		t.Fatal("expected error for empty sources")
	}
}

func TestParseIDs(t *testing.T) {
	got, err := ParseIDs("1, 2 3,,4")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4}, got); diff != "" {
		t.Fatalf("ids (-want +got):\n%s", diff)
	}
	if _, err := ParseIDs("1,x"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}
