package service

import (
	"facilities/internal/core/facility"
	"facilities/internal/core/lifecycle"
	"facilities/internal/core/report"
)

// outcome is what one per-record attempt hands back to the cycle. A failed
// mutation travels as a problem value so siblings keep going
type outcome struct {
	id       facility.ID
	result   lifecycle.Outcome
	problems []string
}

func (o outcome) failed() bool { return len(o.problems) > 0 }

// record folds the outcome into the builder
func (o outcome) record(b *report.Builder) {
	b.Outcome(o.result, o.id)
	b.Problems(o.id, o.problems)
}

func done(id facility.ID, r lifecycle.Outcome) outcome { return outcome{id: id, result: r} }

// failure builds the "Failed to <what>: <cause>" problem
func failure(id facility.ID, what string, err error) outcome {
	return outcome{id: id, problems: []string{"Failed to " + what + ": " + err.Error()}}
}

// also appends a trailing problem while keeping the result
func (o outcome) also(what string, err error) outcome {
	o.problems = append(o.problems, "Failed to "+what+": "+err.Error())
	return o
}
