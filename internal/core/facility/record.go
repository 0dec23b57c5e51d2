package facility

import (
	"regexp"
	"slices"
	"strings"
	"time"
)

// StatusCode is the operating status an administrator can pin on a facility
type StatusCode string

// Operating status codes
const (
	StatusNormal  StatusCode = "NORMAL"
	StatusNotice  StatusCode = "NOTICE"
	StatusLimited StatusCode = "LIMITED"
	StatusClosed  StatusCode = "CLOSED"
)

// OperatingStatus is an administrator authored status override
type OperatingStatus struct {
	Code           StatusCode `json:"code"`
	AdditionalInfo string     `json:"additional_info,omitempty"`
}

// Overlay is the locally curated metadata. It is never derived from upstream and
// travels unchanged through update, tombstone and revive
type Overlay struct {
	OperatingStatus  *OperatingStatus `json:"operating_status,omitempty"`
	DetailedServices []string         `json:"detailed_services,omitempty"`
}

// IsEmpty reports whether nothing has been curated
func (o Overlay) IsEmpty() bool {
	return o.OperatingStatus == nil && len(o.DetailedServices) == 0
}

// Clone deep-copies the overlay so stores never share slices across records
func (o Overlay) Clone() Overlay {
	out := Overlay{DetailedServices: slices.Clone(o.DetailedServices)}
	if o.OperatingStatus != nil {
		st := *o.OperatingStatus
		out.OperatingStatus = &st
	}
	return out
}

// Record is an Active Store row. MissingTimestamp == nil means the facility was present
// in the latest snapshot; otherwise it is the instant it was first seen absent
type Record struct {
	ID               ID         `json:"id"`
	Payload          Payload    `json:"payload"`
	Overlay          Overlay    `json:"overlay"`
	MissingTimestamp *time.Time `json:"missing_timestamp,omitempty"`
	LastUpdated      time.Time  `json:"last_updated"`
}

// Missing reports whether the record is in the missing sub-state
func (r Record) Missing() bool { return r.MissingTimestamp != nil }

// Tombstone is a Tombstone Store row. MissingTimestamp is the original first-missing
// instant, LastUpdated the tombstoning instant
type Tombstone struct {
	ID               ID        `json:"id"`
	Payload          Payload   `json:"payload"`
	Overlay          Overlay   `json:"overlay"`
	MissingTimestamp time.Time `json:"missing_timestamp"`
	LastUpdated      time.Time `json:"last_updated"`
}

var zipPlus4 = regexp.MustCompile(`^(\d{5})-\d{4}$`)

// StorageZip trims a zip and truncates a well formed 5+4 zip to its 5 digit form; anything else is kept as is
func StorageZip(zip string) string {
	zip = strings.TrimSpace(zip)
	if m := zipPlus4.FindStringSubmatch(zip); m != nil {
		return m[1]
	}
	return zip
}

// NewRecord builds an Active record from a payload. Zips are stored in 5 digit form;
// the caller validates the untouched payload
func NewRecord(p Payload, overlay Overlay, now time.Time) Record {
	p.Address = Addresses{
		Physical: storageAddress(p.Address.Physical),
		Mailing:  storageAddress(p.Address.Mailing),
	}
	return Record{
		ID:          p.ID,
		Payload:     p,
		Overlay:     overlay.Clone(),
		LastUpdated: now,
	}
}

func storageAddress(a *Address) *Address {
	if a == nil {
		return nil
	}
	c := *a
	c.Zip = StorageZip(c.Zip)
	return &c
}

// Entomb freezes r into a tombstone. r must be missing
func Entomb(r Record, now time.Time) Tombstone {
	var missing time.Time
	if r.MissingTimestamp != nil {
		missing = *r.MissingTimestamp
	}
	return Tombstone{
		ID:               r.ID,
		Payload:          r.Payload,
		Overlay:          r.Overlay.Clone(),
		MissingTimestamp: missing,
		LastUpdated:      now,
	}
}
