package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"tableflip.dev/fetchlist/pkg/controller"
	"tableflip.dev/fetchlist/pkg/source"
)

type UI struct {
	Controller *controller.Controller
	// Watch lists files whose changes trigger a refresh.
	Watch       []*source.File
	CollapseAll bool
	Log         logrus.FieldLogger
}

func (u *UI) Do(ctx context.Context) error {
	if u.Controller == nil {
		return errors.New("can not start ui, no controller")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	changes, err := mergeWatches(ctx, u.Watch)
	if err != nil {
		return err
	}

	m := New(u.Controller, WithContext(ctx), WithLogger(u.Log), WithChanges(changes), WithCollapseAll(u.CollapseAll))
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// mergeWatches fans the change streams of files into one channel, closed once
// every watcher has stopped. It returns nil when there is nothing to watch.
func mergeWatches(ctx context.Context, files []*source.File) (<-chan source.Event, error) {
	if len(files) == 0 {
		return nil, nil
	}
	streams := make([]<-chan source.Event, 0, len(files))
	for _, f := range files {
		ch, err := f.Watch(ctx)
		if err != nil {
			return nil, err
		}
		streams = append(streams, ch)
	}

	out := make(chan source.Event)
	var wg sync.WaitGroup
	for _, ch := range streams {
		wg.Add(1)
		go func(ch <-chan source.Event) {
			defer wg.Done()
			for ev := range ch {
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}(ch)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out, nil
}
