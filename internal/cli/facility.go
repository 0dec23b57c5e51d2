package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"facilities/internal/core/facility"
	facilitiesmod "facilities/internal/services/facilities/module"
)

func newShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <facility-id>",
		Short: "Print the lifecycle state of one facility",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := facility.ParseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			e, err := open(ctx, opts, facilitiesmod.Options{})
			if err != nil {
				return err
			}
			defer e.close(ctx)

			v, err := e.admin.Lookup(ctx, id)
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), v)
			}
			line := fmt.Sprintf("%s %s", v.ID, v.State)
			if v.MissingTimestamp != nil {
				line += " since " + v.MissingTimestamp.Format(time.RFC3339)
			}
			if v.Record != nil && v.Record.Payload.Name != "" {
				line += " (" + v.Record.Payload.Name + ")"
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}
}

func newDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <facility-id>",
		Short: "Remove a facility from both stores",
		Long:  "Remove a facility from the active and tombstone stores. Refused while it carries overlay data.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := facility.ParseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			e, err := open(ctx, opts, facilitiesmod.Options{})
			if err != nil {
				return err
			}
			defer e.close(ctx)

			if err := e.admin.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			return nil
		},
	}
}
