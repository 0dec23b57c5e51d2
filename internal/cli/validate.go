package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"facilities/internal/adapters/collector/file"
	"facilities/internal/core/report"
	"facilities/internal/core/validate"
)

// ValidationResult is the json shape of validate
type ValidationResult struct {
	Facilities int              `json:"facilities"`
	Problems   []report.Problem `json:"problems"`
}

func newValidateCommand(opts *RootOptions) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "validate --file <snapshot>",
		Short: "Check a snapshot file against the facility rules without touching any store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payloads, err := file.Load(path)
			if err != nil {
				return err
			}
			b := report.NewBuilder("", report.KindUpload)
			for _, p := range payloads {
				b.Problems(p.ID, validate.Facility(p))
			}
			res := ValidationResult{Facilities: len(payloads), Problems: b.Build().Problems}

			out := cmd.OutOrStdout()
			if opts.Format == "json" {
				if err := writeJSON(out, res); err != nil {
					return err
				}
			} else {
				for _, p := range res.Problems {
					fmt.Fprintf(out, "%s: %s\n", p.FacilityID, p.Message)
				}
				fmt.Fprintf(out, "%d facilities, %d problems\n", res.Facilities, len(res.Problems))
			}
			if len(res.Problems) > 0 {
				return fmt.Errorf("%d problems found", len(res.Problems))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "json or yaml snapshot")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
