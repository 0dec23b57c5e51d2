// Package facility holds the identity and record shapes shared by the lifecycle engine and its stores
package facility

import (
	"strings"

	perr "facilities/internal/platform/errors"
)

// Type is the closed set of facility kinds
type Type string

// Facility types; the canonical id prefix is listed next to each
const (
	TypeHealth    Type = "health"     // vha
	TypeBenefits  Type = "benefits"   // vba
	TypeCemetery  Type = "cemetery"   // nca
	TypeVetCenter Type = "vet_center" // vc
)

var prefixes = map[Type]string{
	TypeHealth:    "vha",
	TypeBenefits:  "vba",
	TypeCemetery:  "nca",
	TypeVetCenter: "vc",
}

var byPrefix = map[string]Type{
	"vha": TypeHealth,
	"vba": TypeBenefits,
	"nca": TypeCemetery,
	"vc":  TypeVetCenter,
}

// Prefix returns the id prefix for t, or "" for an unknown type
func (t Type) Prefix() string { return prefixes[t] }

// Valid reports whether t is one of the known types
func (t Type) Valid() bool { _, ok := prefixes[t]; return ok }

// ID is the composite facility key. It is stable for the whole lifecycle of a facility
// and joins active rows, tombstones and upstream payloads
type ID struct {
	Type          Type
	StationNumber string
}

// ParseID parses "<prefix>_<station>". Only the first underscore splits, so station
// numbers may carry their own underscores. The prefix is case-insensitive
func ParseID(s string) (ID, error) {
	prefix, station, ok := strings.Cut(strings.TrimSpace(s), "_")
	if !ok {
		return ID{}, malformed(s)
	}
	t, known := byPrefix[strings.ToLower(prefix)]
	if !known || strings.TrimSpace(station) == "" {
		return ID{}, malformed(s)
	}
	return ID{Type: t, StationNumber: station}, nil
}

// MustParseID is ParseID for literals in tests and fixtures
func MustParseID(s string) ID {
	id, err := ParseID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func malformed(s string) error {
	return perr.WithField(perr.InvalidArgf("malformed facility id %q", s), "id")
}

// String renders the canonical "<prefix>_<station>" form
func (id ID) String() string {
	if id.IsZero() {
		return ""
	}
	return id.Type.Prefix() + "_" + id.StationNumber
}

// IsZero reports an unset id
func (id ID) IsZero() bool { return id.Type == "" && id.StationNumber == "" }

// MarshalText renders the canonical form so ids work as JSON strings and map keys
func (id ID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText parses the canonical form
func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := ParseID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Less orders ids by canonical string
func (id ID) Less(other ID) bool { return id.String() < other.String() }

// IDSet is a membership set of ids
type IDSet map[ID]struct{}

// NewIDSet builds a set from ids
func NewIDSet(ids ...ID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership
func (s IDSet) Has(id ID) bool { _, ok := s[id]; return ok }

// Add inserts id
func (s IDSet) Add(id ID) { s[id] = struct{}{} }
