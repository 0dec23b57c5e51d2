package domain

import (
	"time"

	"facilities/internal/core/facility"
	"facilities/internal/core/lifecycle"
)

// LifecycleView is the wire shape of a lookup
type LifecycleView struct {
	ID               facility.ID         `json:"id"`
	State            string              `json:"state"`
	Record           *facility.Record    `json:"record,omitempty"`
	Tombstone        *facility.Tombstone `json:"tombstone,omitempty"`
	MissingTimestamp *time.Time          `json:"missing_timestamp,omitempty"`
}

// ViewOf renders a lifecycle.Current for callers
func ViewOf(id facility.ID, c lifecycle.Current) LifecycleView {
	v := LifecycleView{ID: id, State: c.State().String()}
	switch cur := c.(type) {
	case lifecycle.ActiveView:
		rec := cur.Record
		v.Record = &rec
		v.MissingTimestamp = rec.MissingTimestamp
	case lifecycle.TombstonedView:
		ts := cur.Tombstone
		v.Tombstone = &ts
		missing := ts.MissingTimestamp
		v.MissingTimestamp = &missing
	}
	return v
}
