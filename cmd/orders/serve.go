package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mytheresa/orders-report/app/catalog"
	"github.com/mytheresa/orders-report/app/reports"
	"github.com/mytheresa/orders-report/database"
	"github.com/mytheresa/orders-report/models"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the reports and the product catalog as JSON and the charts as interactive pages",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		db, err := database.Open(ctx, cfg.Database, logger)
		if err != nil {
			logger.Error("An error occurred while connecting to the database", "error", err)
			return err
		}
		defer database.Close(db)

		mux := http.NewServeMux()
		reports.NewReportsHandler(models.NewReportsRepository(db), cfg.Report.HistogramBins).Register(mux)
		catalog.NewCatalogHandler(models.NewProductsRepository(db)).Register(mux)

		srv := &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      mux,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("Server listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("Shutting down server gracefully ...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("Server exiting")
		return nil
	},
}
