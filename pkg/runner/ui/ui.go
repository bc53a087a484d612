// Package ui launches the full-screen terminal interface.
package ui

import (
	"context"
	"errors"

	"tableflip.dev/stockroom/pkg/activity"
	"tableflip.dev/stockroom/pkg/bus"
	"tableflip.dev/stockroom/pkg/service"
	"tableflip.dev/stockroom/pkg/store"
	"tableflip.dev/stockroom/pkg/tui/app"
	"tableflip.dev/stockroom/pkg/vm"
)

// UI wires persistence, services, the bus, and the activity log into the
// Bubble Tea program and runs it until quit.
type UI struct {
	OrderID int64

	Persistence store.Persistence
	Log         vm.Logger
}

func (u *UI) Do(ctx context.Context) error {
	p := u.Persistence
	log := u.Log
	if p == nil {
		cfg, err := store.LoadConfig()
		if err != nil {
			return err
		}
		if p, err = store.Load(cfg); err != nil {
			return err
		}
		if log == nil {
			al, err := activity.Open(cfg.ActivityPath())
			if err != nil {
				return err
			}
			defer func() { _ = al.Close() }()
			log = al
		}
	}
	if p == nil {
		return errors.New("can not run ui, no persistence")
	}

	return app.Run(app.Options{
		Persistence: p,
		Products:    &service.Products{Persistence: p},
		Items:       &service.OrderItems{Persistence: p},
		Bus:         bus.New(),
		Log:         log,
		OrderID:     u.OrderID,
	})
}
