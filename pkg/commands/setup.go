package commands

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"tableflip.dev/fetchlist/pkg/commands/options"
	"tableflip.dev/fetchlist/pkg/config"
	"tableflip.dev/fetchlist/pkg/controller"
	"tableflip.dev/fetchlist/pkg/listview"
	"tableflip.dev/fetchlist/pkg/logging"
	"tableflip.dev/fetchlist/pkg/record/viewmodel"
	"tableflip.dev/fetchlist/pkg/source"
)

// session is everything a command needs after flags and config are resolved.
type session struct {
	cfg        config.Config
	log        *logrus.Logger
	src        source.Source
	controller *controller.Controller
}

// setup resolves config with flag overrides, then builds the logger, source
// and controller. collapsed ids are added to the configured ones.
func setup(ro *options.RootOptions, logOut io.Writer, collapsed []int) (*session, error) {
	cfg, err := config.Load(ro.ConfigFile)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel()
	if ro.LogLevel != "" {
		level = ro.LogLevel
	}
	if logOut == nil {
		logOut = os.Stderr
	}
	log, err := logging.New(level, logOut)
	if err != nil {
		return nil, err
	}

	locations := cfg.Sources()
	if len(ro.Sources) > 0 {
		locations = ro.Sources
	}
	src, err := source.FromLocations(locations, source.Options{
		Timeout:   cfg.Timeout(),
		UserAgent: cfg.UserAgent(),
	})
	if err != nil {
		return nil, err
	}

	state := listview.NewState()
	for _, id := range append(cfg.Collapsed(), collapsed...) {
		state.SetExpanded(id, false)
	}

	log.WithFields(logrus.Fields{
		"config":  cfg.File(),
		"sources": locations,
	}).Debug("configured")

	ctrl := controller.New(src,
		controller.WithLogger(log),
		controller.WithState(state),
		controller.WithProcessOptions(viewmodel.WithSuffixPrefix(cfg.SuffixPrefix())),
	)
	return &session{cfg: cfg, log: log, src: src, controller: ctrl}, nil
}
