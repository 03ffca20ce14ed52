package action

import (
	"context"
	"fmt"
	"io"

	"github.com/go-logr/logr"

	"github.com/ettom/blynk-lightswitch/blynkctl/options"
	"github.com/ettom/blynk-lightswitch/internal/devices"
	"github.com/ettom/blynk-lightswitch/pkg/blynk"
)

// Dispatcher applies an action to devices one at a time, in list
// order. The first failing call aborts the rest of the loop.
type Dispatcher struct {
	Cfg    *devices.Config
	Client *blynk.Client
	Out    io.Writer
	Log    logr.Logger
}

func (d *Dispatcher) Run(ctx context.Context, act Action, names []string) error {
	switch act.Kind {
	case On:
		return d.apply(ctx, names, 1)
	case Off:
		return d.apply(ctx, names, 0)
	case SetValue:
		return d.apply(ctx, names, act.Value)
	case Flip:
		for _, name := range names {
			if err := d.Client.Flip(ctx, name); err != nil {
				return err
			}
		}
		return nil
	case Just:
		return d.just(ctx, names)
	case Print:
		table, err := d.table(ctx, names)
		if err != nil {
			return err
		}
		fmt.Fprintln(d.Out, table)
		return nil
	case Status:
		st, err := d.States(ctx, names)
		if err != nil {
			return err
		}
		if st.Single != nil {
			fmt.Fprintln(d.Out, blynk.FormatValue(*st.Single))
			return nil
		}
		return options.PrintResult(d.Out, st.Multiple)
	}
	return fmt.Errorf("unhandled action kind %d", act.Kind)
}

func (d *Dispatcher) apply(ctx context.Context, names []string, value float64) error {
	for _, name := range names {
		if err := d.Client.SetState(ctx, name, value); err != nil {
			return err
		}
	}
	return nil
}

// just turns the given devices on, then turns off every other
// non-excluded device that shares a group with any of them. Devices
// without a group are never turned off.
func (d *Dispatcher) just(ctx context.Context, names []string) error {
	if err := d.apply(ctx, names, 1); err != nil {
		return err
	}

	inArgs := make(map[string]struct{}, len(names))
	argGroups := make(map[string]struct{})
	for _, name := range names {
		dev, err := d.Cfg.Lookup(name)
		if err != nil {
			return err
		}
		inArgs[name] = struct{}{}
		if dev.Group != "" {
			argGroups[dev.Group] = struct{}{}
		}
	}

	for _, dev := range d.Cfg.Devices() {
		if d.Cfg.Excluded(dev.Name) {
			continue
		}
		if _, ok := inArgs[dev.Name]; ok {
			continue
		}
		if _, ok := argGroups[dev.Group]; !ok || dev.Group == "" {
			continue
		}
		if err := d.Client.SetState(ctx, dev.Name, 0); err != nil {
			return err
		}
	}
	return nil
}

// States is the result of a status action: Single is set when exactly
// one device was requested, Multiple otherwise.
type States struct {
	Single   *float64
	Multiple map[string]float64
}

func (d *Dispatcher) States(ctx context.Context, names []string) (States, error) {
	if len(names) == 1 {
		v, err := d.Client.GetState(ctx, names[0])
		if err != nil {
			return States{}, err
		}
		return States{Single: &v}, nil
	}

	m := make(map[string]float64, len(names))
	for _, name := range names {
		v, err := d.Client.GetState(ctx, name)
		if err != nil {
			return States{}, err
		}
		m[name] = v
	}
	return States{Multiple: m}, nil
}
