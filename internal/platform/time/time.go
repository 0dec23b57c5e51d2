// Package time contains time related helpers
package time

import "time"

// Clock supplies the current instant; swap it in tests to pin "now"
type Clock interface {
	Now() time.Time
}

// System is the wall clock in UTC
type System struct{}

// Now returns the current UTC time
func (System) Now() time.Time { return time.Now().UTC() }

// Fixed is a clock that always reports the same instant
type Fixed time.Time

// Now returns the pinned instant
func (f Fixed) Now() time.Time { return time.Time(f) }

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Deref returns the zero time for nil, else *t
func Deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
