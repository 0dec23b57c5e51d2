// Package report accumulates the outcome of one reconciliation cycle
package report

import (
	"slices"
	"sort"
	"sync"
	"time"

	"facilities/internal/core/facility"
	"facilities/internal/core/lifecycle"
)

// Kind says what produced a report
type Kind string

// Report kinds
const (
	KindReload Kind = "reload"
	KindUpload Kind = "upload"
)

// Problem is one non-fatal finding tied to a facility
type Problem struct {
	FacilityID facility.ID `json:"facility_id"`
	Message    string      `json:"message"`
}

// Timing holds the three stamps of a cycle
type Timing struct {
	CollectionStarted       time.Time `json:"collection_started"`
	CollectionCompleted     time.Time `json:"collection_completed"`
	ReconciliationCompleted time.Time `json:"reconciliation_completed"`
}

// Report is the operator facing result of a cycle
type Report struct {
	CycleID  string        `json:"cycle_id"`
	Kind     Kind          `json:"kind"`
	Created  []facility.ID `json:"created"`
	Updated  []facility.ID `json:"updated"`
	Missing  []facility.ID `json:"missing"`
	Removed  []facility.ID `json:"removed"`
	Revived  []facility.ID `json:"revived"`
	Purged   []facility.ID `json:"purged"`
	Problems []Problem     `json:"problems"`
	Timing   Timing        `json:"timing"`
}

// Duration is the wall time from collection start to reconciliation end
func (r Report) Duration() time.Duration {
	if r.Timing.CollectionStarted.IsZero() || r.Timing.ReconciliationCompleted.IsZero() {
		return 0
	}
	return r.Timing.ReconciliationCompleted.Sub(r.Timing.CollectionStarted)
}

// Counts returns list sizes keyed by outcome
func (r Report) Counts() map[lifecycle.Outcome]int {
	return map[lifecycle.Outcome]int{
		lifecycle.OutcomeCreated: len(r.Created),
		lifecycle.OutcomeUpdated: len(r.Updated),
		lifecycle.OutcomeMissing: len(r.Missing),
		lifecycle.OutcomeRemoved: len(r.Removed),
		lifecycle.OutcomeRevived: len(r.Revived),
		lifecycle.OutcomePurged:  len(r.Purged),
	}
}

// Builder is an append-only, concurrency safe accumulator for a Report
type Builder struct {
	mu sync.Mutex
	r  Report
}

// NewBuilder starts an empty report
func NewBuilder(cycleID string, kind Kind) *Builder {
	return &Builder{r: Report{CycleID: cycleID, Kind: kind}}
}

// Outcome appends id to the list for o. OutcomeNone is ignored
func (b *Builder) Outcome(o lifecycle.Outcome, id facility.ID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch o {
	case lifecycle.OutcomeCreated:
		b.r.Created = append(b.r.Created, id)
	case lifecycle.OutcomeUpdated:
		b.r.Updated = append(b.r.Updated, id)
	case lifecycle.OutcomeMissing:
		b.r.Missing = append(b.r.Missing, id)
	case lifecycle.OutcomeRemoved:
		b.r.Removed = append(b.r.Removed, id)
	case lifecycle.OutcomeRevived:
		b.r.Revived = append(b.r.Revived, id)
	case lifecycle.OutcomePurged:
		b.r.Purged = append(b.r.Purged, id)
	}
}

// Problem appends one finding
func (b *Builder) Problem(id facility.ID, msg string) {
	b.mu.Lock()
	b.r.Problems = append(b.r.Problems, Problem{FacilityID: id, Message: msg})
	b.mu.Unlock()
}

// Problems appends several findings for the same facility
func (b *Builder) Problems(id facility.ID, msgs []string) {
	if len(msgs) == 0 {
		return
	}
	b.mu.Lock()
	for _, m := range msgs {
		b.r.Problems = append(b.r.Problems, Problem{FacilityID: id, Message: m})
	}
	b.mu.Unlock()
}

// CollectionStarted stamps the start of collection
func (b *Builder) CollectionStarted(t time.Time) { b.stamp(&b.r.Timing.CollectionStarted, t) }

// CollectionCompleted stamps the end of collection
func (b *Builder) CollectionCompleted(t time.Time) { b.stamp(&b.r.Timing.CollectionCompleted, t) }

// ReconciliationCompleted stamps the end of the cycle
func (b *Builder) ReconciliationCompleted(t time.Time) {
	b.stamp(&b.r.Timing.ReconciliationCompleted, t)
}

func (b *Builder) stamp(dst *time.Time, t time.Time) {
	b.mu.Lock()
	*dst = t
	b.mu.Unlock()
}

// Build returns a sorted copy. The builder stays usable
func (b *Builder) Build() Report {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.r
	out.Created = sortedIDs(b.r.Created)
	out.Updated = sortedIDs(b.r.Updated)
	out.Missing = sortedIDs(b.r.Missing)
	out.Removed = sortedIDs(b.r.Removed)
	out.Revived = sortedIDs(b.r.Revived)
	out.Purged = sortedIDs(b.r.Purged)
	out.Problems = slices.Clone(b.r.Problems)
	if out.Problems == nil {
		out.Problems = []Problem{}
	}
	// problems keep insertion order per facility
	sort.SliceStable(out.Problems, func(i, j int) bool {
		return out.Problems[i].FacilityID.Less(out.Problems[j].FacilityID)
	})
	return out
}

func sortedIDs(in []facility.ID) []facility.ID {
	out := make([]facility.ID, len(in))
	copy(out, in)
	slices.SortFunc(out, func(a, b facility.ID) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return out
}
