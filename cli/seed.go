package cli

import (
	"fmt"

	"github.com/heavydutyrent/machinery-api/seed"
	"github.com/spf13/cobra"
)

// SeedOptions holds flags for the seed command
type SeedOptions struct {
	*RootOptions
	File string
}

// NewSeedCommand creates the seed command
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load fixture data into an empty database",
		Long: `Migrate the database and create the buyers, sellers, machineries,
categories and orders of a YAML fixture. Without --file or SEED_FILE the
built-in development fixture is used.

Example:
  machinery-api seed
  machinery-api seed --file ./fixtures/demo.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.File
			if path == "" {
				path = opts.Config.SeedFile
			}

			fixture, err := seed.Load(path)
			if err != nil {
				return err
			}

			db, err := openAndMigrate(opts.Config)
			if err != nil {
				return err
			}

			result, err := seed.Apply(cmd.Context(), db, fixture)
			if err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s\n", result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "seed YAML file (default from SEED_FILE, then built-in)")

	return cmd
}
