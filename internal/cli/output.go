package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/language"

	"facilities/internal/core/report"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeReport prints the summary line followed by one line per problem
func writeReport(w io.Writer, format string, lang language.Tag, r report.Report) error {
	if format == "json" {
		return writeJSON(w, r)
	}
	if _, err := fmt.Fprintln(w, r.Summary(lang)); err != nil {
		return err
	}
	for _, p := range r.Problems {
		if _, err := fmt.Fprintf(w, "  %s: %s\n", p.FacilityID, p.Message); err != nil {
			return err
		}
	}
	return nil
}
