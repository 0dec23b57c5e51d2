// Package cli implements facilitiesctl, the operator command line around the lifecycle stores
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"facilities/internal/core/version"
)

// RootOptions holds global flags for all commands
type RootOptions struct {
	Format string // text | json
	Lang   string
	PGURL  string
	SQLite string

	lang language.Tag
}

// ValidFormats lists the accepted --format values
var ValidFormats = []string{"text", "json"}

// NewRootCommand builds the facilitiesctl command tree
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "facilitiesctl",
		Short:         "Reconcile and inspect facility lifecycle state",
		Version:       version.For("facilitiesctl").String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			tag, err := language.Parse(opts.Lang)
			if err != nil {
				return fmt.Errorf("invalid lang %q: %w", opts.Lang, err)
			}
			opts.lang = tag
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	pf.StringVar(&opts.Lang, "lang", "en", "language of report summaries")
	pf.StringVar(&opts.PGURL, "pg-url", "", "postgres url (default SERVICE_PGSQL_DBURL)")
	pf.StringVar(&opts.SQLite, "sqlite", "", "sqlite database path (default SERVICE_SQLITE_PATH, then "+DefaultSQLitePath+")")

	cmd.AddCommand(
		newReloadCommand(opts),
		newUploadCommand(opts),
		newShowCommand(opts),
		newDeleteCommand(opts),
		newValidateCommand(opts),
		newMigrateCommand(opts),
	)
	return cmd
}
