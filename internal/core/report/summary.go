package report

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary renders a one-line human readable digest, localized for tag
func (r Report) Summary(tag language.Tag) string {
	p := message.NewPrinter(tag)
	return p.Sprintf("%s %s: %d created, %d updated, %d missing, %d removed, %d revived, %d purged, %d problems in %v",
		r.Kind, r.CycleID,
		len(r.Created), len(r.Updated), len(r.Missing), len(r.Removed), len(r.Revived), len(r.Purged),
		len(r.Problems), r.Duration().Round(time.Millisecond))
}
