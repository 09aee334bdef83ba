package cli

import (
	"github.com/heavydutyrent/machinery-api/config"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// RootOptions holds state shared by every subcommand
type RootOptions struct {
	Config *config.Config
}

// NewRootCommand creates the machinery-api command tree
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "machinery-api",
		Short: "Heavy Duty Rent API",
		Long:  "Catalog and booking backend for rentable heavy machinery.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.Config = cfg
			return nil
		},
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

// openAndMigrate connects the configured database and brings its schema up to date
func openAndMigrate(cfg *config.Config) (*gorm.DB, error) {
	if err := config.ConnectDatabase(cfg); err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := config.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
