// Package lifecycle is the single source of truth for facility state transitions
package lifecycle

import (
	"time"

	"facilities/internal/core/facility"
)

// State is a facility's position in the lifecycle
type State int

// Lifecycle states. Missing is the Active sub-state with a first-missing timestamp set
const (
	Absent State = iota
	Active
	Missing
	Tombstoned
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Missing:
		return "missing"
	case Tombstoned:
		return "tombstoned"
	default:
		return "absent"
	}
}

// Action is the store mutation a transition asks for
type Action int

// Actions
const (
	Noop         Action = iota
	Create              // save a new active record from the payload
	Overwrite           // replace the payload, clear the missing timestamp
	MarkMissing         // stamp missing=now on the active record
	StayMissing         // leave the record untouched
	Entomb              // move to the tombstone store, delete active
	Revive              // recreate active with the tombstone overlay, delete tombstone
)

func (a Action) String() string {
	return [...]string{"noop", "create", "overwrite", "mark_missing", "stay_missing", "entomb", "revive"}[a]
}

// Outcome is the report bucket a transition lands in
type Outcome string

// Outcomes
const (
	OutcomeNone    Outcome = ""
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
	OutcomeMissing Outcome = "missing"
	OutcomeRemoved Outcome = "removed"
	OutcomeRevived Outcome = "revived"
	OutcomePurged  Outcome = "purged"
)

// Transition is the result of Decide
type Transition struct {
	From    State
	To      State
	Action  Action
	Outcome Outcome
}

// Decide maps the current state and snapshot presence to the next state.
// missingSince is only consulted for the Missing state; threshold is the grace period
// a missing record gets before it is tombstoned
func Decide(from State, inSnapshot bool, missingSince, now time.Time, threshold time.Duration) Transition {
	t := Transition{From: from}
	switch from {
	case Absent:
		if inSnapshot {
			t.To, t.Action, t.Outcome = Active, Create, OutcomeCreated
		} else {
			t.To = Absent
		}
	case Active:
		if inSnapshot {
			t.To, t.Action, t.Outcome = Active, Overwrite, OutcomeUpdated
		} else {
			t.To, t.Action, t.Outcome = Missing, MarkMissing, OutcomeMissing
		}
	case Missing:
		switch {
		case inSnapshot:
			t.To, t.Action, t.Outcome = Active, Overwrite, OutcomeUpdated
		case now.Sub(missingSince) >= threshold:
			t.To, t.Action, t.Outcome = Tombstoned, Entomb, OutcomeRemoved
		default:
			t.To, t.Action, t.Outcome = Missing, StayMissing, OutcomeMissing
		}
	case Tombstoned:
		if inSnapshot {
			t.To, t.Action, t.Outcome = Active, Revive, OutcomeRevived
		} else {
			t.To = Tombstoned
		}
	}
	return t
}

// Current is the lifecycle view of one facility: exactly one of Active, Tombstoned or Absent
type Current interface {
	State() State
	isCurrent()
}

// ActiveView wraps an active store row. It reports Missing when the row carries a missing timestamp
type ActiveView struct{ Record facility.Record }

// TombstonedView wraps a tombstone store row
type TombstonedView struct{ Tombstone facility.Tombstone }

// AbsentView is a facility unknown to both stores
type AbsentView struct{}

// State implements Current
func (a ActiveView) State() State {
	if a.Record.Missing() {
		return Missing
	}
	return Active
}

// State implements Current
func (TombstonedView) State() State { return Tombstoned }

// State implements Current
func (AbsentView) State() State { return Absent }

func (ActiveView) isCurrent()     {}
func (TombstonedView) isCurrent() {}
func (AbsentView) isCurrent()     {}

// Of builds the view from the two store lookups. An active row wins if both exist
func Of(rec *facility.Record, ts *facility.Tombstone) Current {
	switch {
	case rec != nil:
		return ActiveView{Record: *rec}
	case ts != nil:
		return TombstonedView{Tombstone: *ts}
	default:
		return AbsentView{}
	}
}

// MissingSince returns the first-missing instant for a view, zero for anything not missing
func MissingSince(c Current) time.Time {
	if a, ok := c.(ActiveView); ok && a.Record.MissingTimestamp != nil {
		return *a.Record.MissingTimestamp
	}
	return time.Time{}
}
