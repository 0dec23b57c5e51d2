// Package validate reports data quality findings on upstream facility payloads.
// Findings are informational and never block persistence
package validate

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"

	"facilities/internal/core/facility"
	str "facilities/internal/platform/strings"
)

// PhoneRegion is the default region for parsing main phone numbers
const PhoneRegion = "US"

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

var weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// Facility runs every rule against p and returns all findings in a stable order.
// A nil or empty result means the payload is clean
func Facility(p facility.Payload) []string {
	var out []string
	if p.Address.Physical == nil {
		out = append(out, "Missing physical address")
	} else {
		out = append(out, address("Physical", p.Address.Physical)...)
	}
	if p.Address.Mailing != nil {
		out = append(out, address("Mailing", p.Address.Mailing)...)
	}
	out = append(out, phone(p.Phone.Main)...)
	for _, d := range weekdays {
		if str.IsBlank(p.Hours.Day(d)) {
			out = append(out, "Missing hours: "+d.String())
		}
	}
	if str.IsBlank(p.Classification) {
		out = append(out, "Missing classification")
	}
	return append(out, coordinates(p.Latitude, p.Longitude)...)
}

func address(kind string, a *facility.Address) []string {
	var out []string
	prefix := kind + " address: "
	if str.IsBlank(a.State) {
		out = append(out, prefix+"Missing state")
	}
	if str.IsBlank(a.City) {
		out = append(out, prefix+"Missing city")
	}
	if str.AllBlank(a.Address1, a.Address2, a.Address3) {
		out = append(out, prefix+"Missing street address")
	}
	if zip := strings.TrimSpace(a.Zip); zip != "" && !zipPattern.MatchString(zip) {
		out = append(out, prefix+"Invalid zip: "+a.Zip)
	}
	return out
}

func phone(main string) []string {
	if str.IsBlank(main) {
		return []string{"Missing main phone number"}
	}
	if !PlausiblePhone(main) {
		return []string{"Invalid main phone number: " + main}
	}
	return nil
}

// PlausiblePhone reports whether v could be a dialable number. Extensions are accepted
func PlausiblePhone(v string) bool {
	num, err := phonenumbers.Parse(v, PhoneRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsPossibleNumber(num)
}

func coordinates(lat, long *float64) []string {
	if lat == nil && long == nil {
		return []string{"Missing coordinates"}
	}
	var out []string
	if !within(lat, 90) {
		out = append(out, "Invalid latitude")
	}
	if !within(long, 180) {
		out = append(out, "Invalid longitude")
	}
	return out
}

// within reports v in [-limit, limit]; NaN fails every comparison so it is checked first
func within(v *float64, limit float64) bool {
	return v != nil && !math.IsNaN(*v) && *v >= -limit && *v <= limit
}
