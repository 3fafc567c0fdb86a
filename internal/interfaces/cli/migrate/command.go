// Package migrate provides the schema migration and seed commands.
package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"abono/internal/infrastructure/config"
	"abono/internal/infrastructure/database"
	"abono/internal/infrastructure/persistence/seeds"
	"abono/internal/shared/logger"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage the database schema: apply migrations and seed reference data.`,
	}

	cmd.AddCommand(
		newUpCommand(),
		newSeedCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply schema migrations",
		Long:  `Create or update every table to match the current persistence models.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(); err != nil {
				return err
			}
			defer database.Close()

			return database.Migrate()
		},
	}
}

func newSeedCommand() *cobra.Command {
	var withDemo bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed reference data",
		Long: `Insert the standard plan tiers. Existing rows are left untouched.
With --demo, also create demo users with active subscriptions and first invoices.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(); err != nil {
				return err
			}
			defer database.Close()

			if err := seeds.SeedPlans(database.Get()); err != nil {
				return fmt.Errorf("failed to seed plans: %w", err)
			}

			if withDemo {
				if err := seeds.SeedDemoData(database.Get()); err != nil {
					return fmt.Errorf("failed to seed demo data: %w", err)
				}
			}

			logger.Info("seed completed")
			return nil
		},
	}

	cmd.Flags().BoolVar(&withDemo, "demo", false, "also seed demo users, subscriptions and invoices")

	return cmd
}

func setup() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		OutputPath: cfg.Logger.OutputPath,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	return nil
}
