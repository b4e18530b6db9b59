// Package config loads fetchlist settings from defaults, an optional
// .fetchlist config file and FETCHLIST_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/fetchlist/pkg/record/viewmodel"
	"tableflip.dev/fetchlist/pkg/source"
)

// Keys understood by Load.
const (
	KeySources      = "sources"
	KeyTimeout      = "timeout"
	KeyUserAgent    = "user-agent"
	KeySuffixPrefix = "suffix-prefix"
	KeyLogLevel     = "log-level"
	KeyCollapsed    = "collapsed"
)

// Config exposes resolved settings.
type Config interface {
	Sources() []string
	Timeout() time.Duration
	UserAgent() string
	SuffixPrefix() string
	LogLevel() string
	Collapsed() []int
	// File is the config file that was read, or "" when none was found.
	File() string
}

// Load reads configuration into a fresh viper instance. explicitFile, when
// set, must exist; otherwise .fetchlist.{yaml,json,toml} is searched for in
// $FETCHLIST_CONFIG_PATH, the working directory and the home directory, and
// a missing file is not an error.
func Load(explicitFile string) (Config, error) {
	v := New()
	if explicitFile != "" {
		path, err := homedir.Expand(explicitFile)
		if err != nil {
			return nil, fmt.Errorf("config: expand %q: %w", explicitFile, err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".fetchlist")
		if override := os.Getenv("FETCHLIST_CONFIG_PATH"); override != "" {
			v.AddConfigPath(override)
		}
		v.AddConfigPath("./")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}
	return FromViper(v)
}

// New returns a viper instance with fetchlist defaults and environment
// binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeySources, []string{source.DefaultURL})
	v.SetDefault(KeyTimeout, source.DefaultTimeout)
	v.SetDefault(KeyUserAgent, source.DefaultUserAgent)
	v.SetDefault(KeySuffixPrefix, viewmodel.DefaultSuffixPrefix)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyCollapsed, []int{})
	v.SetEnvPrefix("FETCHLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// FromViper validates and snapshots the settings held by v.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := &fileConfig{
		SourceList:   cleanList(v.GetStringSlice(KeySources)),
		FetchTimeout: v.GetDuration(KeyTimeout),
		Agent:        v.GetString(KeyUserAgent),
		Prefix:       v.GetString(KeySuffixPrefix),
		Level:        v.GetString(KeyLogLevel),
		ConfigFile:   v.ConfigFileUsed(),
	}
	if len(cfg.SourceList) == 0 {
		return nil, errors.New("config: at least one source is required")
	}
	if cfg.FetchTimeout < 0 {
		return nil, fmt.Errorf("config: negative timeout %s", cfg.FetchTimeout)
	}
	collapsed, err := toInts(v.Get(KeyCollapsed))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", KeyCollapsed, err)
	}
	cfg.CollapsedIDs = collapsed
	return cfg, nil
}

type fileConfig struct {
	SourceList   []string      `json:"sources"`
	FetchTimeout time.Duration `json:"timeout"`
	Agent        string        `json:"user-agent"`
	Prefix       string        `json:"suffix-prefix"`
	Level        string        `json:"log-level"`
	CollapsedIDs []int         `json:"collapsed"`
	ConfigFile   string        `json:"-"`
}

func (f *fileConfig) Sources() []string      { return append([]string(nil), f.SourceList...) }
func (f *fileConfig) Timeout() time.Duration { return f.FetchTimeout }
func (f *fileConfig) UserAgent() string      { return f.Agent }
func (f *fileConfig) SuffixPrefix() string   { return f.Prefix }
func (f *fileConfig) LogLevel() string       { return f.Level }
func (f *fileConfig) Collapsed() []int       { return append([]int(nil), f.CollapsedIDs...) }
func (f *fileConfig) File() string           { return f.ConfigFile }
