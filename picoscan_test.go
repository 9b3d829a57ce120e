// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package picoscan

import "io"

// eventSummary flattens an Event into something comparable with go-cmp
// without teaching cmp about mem.RO's internal representation.
type eventSummary struct {
	Kind        string
	Pos         int
	Key         string
	Str         string
	FromScratch bool
	Bool        bool
	NumOutcome  string
	NumInt      int64
	NumFloat    float64
}

func summarize(e Event) eventSummary {
	// The zero NumberOutcome is OutcomeInteger, so the outcome is only
	// meaningful (and only summarized) for Number events.
	var outcome string
	if e.Kind == KindNumber {
		outcome = e.Num.Outcome.String()
	}
	return eventSummary{
		Kind:        e.Kind.String(),
		Pos:         e.Pos,
		Key:         e.Key.StringCopy(),
		Str:         e.Str.StringCopy(),
		FromScratch: e.Key.FromScratch || e.Str.FromScratch,
		Bool:        e.Bool,
		NumOutcome:  outcome,
		NumInt:      e.Num.Int,
		NumFloat:    e.Num.Float,
	}
}

// drainAll pulls every Event from next until io.EOF, summarizing each one.
// It returns the non-EOF error, if any.
func drainAll(next func() (Event, error)) ([]eventSummary, error) {
	var out []eventSummary
	for {
		ev, err := next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, summarize(ev))
	}
}
