package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"tableflip.dev/fetchlist/pkg/controller"
	"tableflip.dev/fetchlist/pkg/printers"
)

// Output formats understood by Get.
const (
	OutputText  = "text"
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Formats lists the accepted --output values.
func Formats() []string {
	return []string{OutputText, OutputTable, OutputJSON, OutputYAML}
}

type Get struct {
	Controller *controller.Controller
	Output     string
	ShowID     bool
	// CollapseAll folds every list after loading.
	CollapseAll bool
	Out         io.Writer
}

type item struct {
	ID     int    `json:"id" yaml:"id"`
	ListID int    `json:"listId" yaml:"listId"`
	Name   string `json:"name" yaml:"name"`
}

type list struct {
	ListID   int    `json:"listId" yaml:"listId"`
	Expanded bool   `json:"expanded" yaml:"expanded"`
	Count    int    `json:"count" yaml:"count"`
	Items    []item `json:"items" yaml:"items"`
}

// Do runs a single refresh and prints the result.
func (g *Get) Do(ctx context.Context) error {
	if g.Controller == nil {
		return errors.New("can not get, no controller")
	}
	out := g.Out
	if out == nil {
		out = os.Stdout
	}

	if err := g.Controller.Refresh(ctx); err != nil {
		return err
	}
	if g.CollapseAll {
		g.Controller.SetAllExpanded(false)
	}
	snap := g.Controller.Snapshot()

	pp := printers.PrettyPrint{Out: out, ShowID: g.ShowID}
	switch strings.ToLower(g.Output) {
	case "", OutputText:
		return pp.List(snap.Grouped, snap.State)
	case OutputTable:
		return pp.Table(snap.Grouped, snap.State)
	case OutputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(lists(snap))
	case OutputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(lists(snap)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output %q, expected one of %s", g.Output, strings.Join(Formats(), ", "))
	}
}

// lists converts a snapshot into its serializable shape. Collapsed groups
// keep their count but list no items.
func lists(snap controller.Snapshot) []list {
	out := make([]list, 0, snap.Grouped.Len())
	if snap.Grouped == nil {
		return out
	}
	for _, id := range snap.Grouped.IDs {
		grp, ok := snap.Grouped.Group(id)
		if !ok {
			continue
		}
		l := list{
			ListID:   id,
			Expanded: snap.State.IsExpanded(id),
			Count:    len(grp.Items),
			Items:    []item{},
		}
		if l.Expanded {
			for _, r := range grp.Items {
				l.Items = append(l.Items, item{ID: r.ID, ListID: r.GroupID, Name: r.DisplayName()})
			}
		}
		out = append(out, l)
	}
	return out
}
