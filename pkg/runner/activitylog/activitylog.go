// Package activitylog implements the activity CLI verb.
package activitylog

import (
	"context"
	"errors"

	"tableflip.dev/stockroom/pkg/activity"
	"tableflip.dev/stockroom/pkg/printers"
)

// Show prints the newest activity entries.
type Show struct {
	Path  string
	Count int
}

func (s *Show) Do(_ context.Context) error {
	if s.Path == "" {
		return errors.New("can not show activity, no log path")
	}
	count := s.Count
	if count <= 0 {
		count = 20
	}
	entries, err := activity.Tail(s.Path, count)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.TitleWithCount("Activity", len(entries))

	rows := make([]printers.ActivityEntry, 0, len(entries))
	for _, e := range entries {
		when := e.TS
		if !e.Timestamp.IsZero() {
			when = e.Timestamp.Format("2006-01-02 15:04:05")
		}
		rows = append(rows, printers.ActivityEntry{
			When:    when,
			Source:  e.Source,
			Action:  e.Action,
			Summary: e.Summary,
			IsError: e.Level == "error",
		})
	}
	pp.Activity(rows...)
	return nil
}
