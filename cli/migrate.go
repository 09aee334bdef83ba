package cli

import (
	"log"

	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := openAndMigrate(opts.Config); err != nil {
				return err
			}
			log.Println("Database migration completed successfully")
			return nil
		},
	}
}
