package service

import (
	"time"

	"facilities/internal/core/facility"
)

// PurgePolicy decides whether a tombstone left out of a snapshot is dropped for good
type PurgePolicy interface {
	ShouldPurge(t facility.Tombstone, now time.Time) bool
}

// NeverPurge keeps tombstones forever
type NeverPurge struct{}

// ShouldPurge implements PurgePolicy
func (NeverPurge) ShouldPurge(facility.Tombstone, time.Time) bool { return false }

// PurgeAfter drops tombstones older than the retention, measured from the tombstoning instant
type PurgeAfter time.Duration

// ShouldPurge implements PurgePolicy
func (p PurgeAfter) ShouldPurge(t facility.Tombstone, now time.Time) bool {
	return now.Sub(t.LastUpdated) >= time.Duration(p)
}

// PolicyFor maps a retention setting to a policy; zero or less never purges
func PolicyFor(retention time.Duration) PurgePolicy {
	if retention <= 0 {
		return NeverPurge{}
	}
	return PurgeAfter(retention)
}

func purges(p PurgePolicy) bool {
	if p == nil {
		return false
	}
	_, never := p.(NeverPurge)
	return !never
}
