package cli

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/heavydutyrent/machinery-api/server"
	"github.com/heavydutyrent/machinery-api/services"
	"github.com/spf13/cobra"
)

// ServeOptions holds flags for the serve command
type ServeOptions struct {
	*RootOptions
	Port string
}

// NewServeCommand creates the serve command
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Connect to the database, migrate it, set up image storage and serve the
REST API until interrupted.

Example:
  machinery-api serve
  machinery-api serve --port 9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Port, "port", "", "port to listen on (default from PORT)")

	return cmd
}

func runServe(ctx context.Context, opts *ServeOptions) error {
	cfg := opts.Config
	log.Println("Starting Heavy Duty Rent API server...")

	db, err := openAndMigrate(cfg)
	if err != nil {
		return err
	}
	log.Println("Database migration completed successfully")

	if _, err := services.InitImageStorage(ctx, cfg); err != nil {
		return err
	}

	port := cfg.Port
	if opts.Port != "" {
		port = opts.Port
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, ":"+port, server.NewRouter(cfg, db))
}
