package main

import (
	"github.com/spf13/cobra"

	"github.com/mytheresa/orders-report/app/seed"
	"github.com/mytheresa/orders-report/database"
	"github.com/mytheresa/orders-report/models"
)

var createDatabase bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema and fill it with sample data",
	Long: `seed creates the customers, products, orders and order_items tables when
they are missing and inserts 10 customers, 15 products, 28 orders and their
order items. Seeding an already populated store fails on duplicate keys.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if createDatabase {
			if err := database.EnsureDatabaseExists(ctx, cfg.Database, logger); err != nil {
				return err
			}
		}

		db, err := database.Open(ctx, cfg.Database, logger)
		if err != nil {
			logger.Error("An error occurred while connecting to the database", "error", err)
			return err
		}
		defer database.Close(db)

		if err := database.RunMigrations(ctx, db, logger); err != nil {
			return err
		}

		g := seed.NewGenerator(
			models.NewCustomersRepository(db),
			models.NewProductsRepository(db),
			models.NewOrdersRepository(db),
			seed.Options{Seed: cfg.Seed.RandomSeed, Logger: logger},
		)
		return g.Run(ctx)
	},
}

func init() {
	seedCmd.Flags().BoolVar(&createDatabase, "create-database", false, "create the configured database first when it does not exist")
}
