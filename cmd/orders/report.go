package main

import (
	"github.com/spf13/cobra"

	"github.com/mytheresa/orders-report/app/reports"
	"github.com/mytheresa/orders-report/database"
	"github.com/mytheresa/orders-report/models"
)

var outputDir string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the top clients and bestsellers reports and render their charts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if outputDir != "" {
			cfg.Report.OutputDir = outputDir
		}

		db, err := database.Open(ctx, cfg.Database, logger)
		if err != nil {
			logger.Error("An error occurred while connecting to the database", "error", err)
			return err
		}
		defer database.Close(db)

		tableDB, err := database.OpenSQL(ctx, cfg.Database)
		if err != nil {
			logger.Error("An error occurred while connecting to the database", "error", err)
			return err
		}
		defer tableDB.Close()

		res, err := reports.NewReporter(models.NewReportsRepository(db)).Run(ctx, reports.Options{
			Out:             cmd.OutOrStdout(),
			TableDB:         tableDB,
			OutputDir:       cfg.Report.OutputDir,
			HistogramBins:   cfg.Report.HistogramBins,
			BestsellerLimit: cfg.Report.BestsellerLimit,
			Logger:          logger,
		})
		if err != nil {
			return err
		}
		for _, path := range res.Charts {
			cmd.Printf("Chart written to %s\n", path)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&outputDir, "out", "", "directory for the rendered charts (overrides report.output_dir)")
}
