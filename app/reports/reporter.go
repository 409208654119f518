package reports

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/mytheresa/orders-report/app/charts"
	"github.com/mytheresa/orders-report/models"
)

const (
	OrderCountColumn   = "order_count"
	ProductNameColumn  = "name"
	QuantitySoldColumn = "quantity_sold"

	HistogramFile = "order_counts.html"
	LineChartFile = "bestsellers.html"
)

type ReportProvider interface {
	TopClients(ctx context.Context) ([]models.ClientOrderCount, error)
	Bestsellers(ctx context.Context, limit int) ([]models.Bestseller, error)
}

// StatementProvider exposes the SQL behind each report so it can be re-run
// on a plain database/sql connection.
type StatementProvider interface {
	TopClientsStatement() string
	BestsellersStatement(limit int) string
}

type Source interface {
	ReportProvider
	StatementProvider
}

type Options struct {
	// Out receives the printed reports.
	Out io.Writer
	// TableDB is the connection the report statements are tabulated on.
	TableDB         *sql.DB
	OutputDir       string
	HistogramBins   int
	BestsellerLimit int
	Logger          *slog.Logger
}

type Result struct {
	TopClients       []models.ClientOrderCount
	Bestsellers      []models.Bestseller
	TopClientsTable  *Table
	BestsellersTable *Table
	// Charts lists the rendered chart files.
	Charts []string
}

type Reporter struct {
	source Source
}

func NewReporter(s Source) *Reporter {
	return &Reporter{source: s}
}

// Run queries both reports, prints them, tabulates them on opts.TableDB and
// renders the histogram and the line chart into opts.OutputDir.
func (r *Reporter) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limit := opts.BestsellerLimit
	if limit <= 0 {
		limit = models.DefaultBestsellerLimit
	}
	res := &Result{}

	topClients, err := r.source.TopClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("top clients: %w", err)
	}
	res.TopClients = topClients
	if err := PrintTopClients(opts.Out, topClients); err != nil {
		return nil, fmt.Errorf("print top clients: %w", err)
	}

	bestsellers, err := r.source.Bestsellers(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("bestsellers: %w", err)
	}
	res.Bestsellers = bestsellers
	if err := PrintBestsellers(opts.Out, bestsellers); err != nil {
		return nil, fmt.Errorf("print bestsellers: %w", err)
	}

	if res.TopClientsTable, err = Tabulate(ctx, opts.TableDB, r.source.TopClientsStatement()); err != nil {
		return nil, fmt.Errorf("tabulate top clients: %w", err)
	}
	if res.BestsellersTable, err = Tabulate(ctx, opts.TableDB, r.source.BestsellersStatement(limit)); err != nil {
		return nil, fmt.Errorf("tabulate bestsellers: %w", err)
	}
	logger.Debug("Reports tabulated",
		"top_clients_rows", res.TopClientsTable.Len(),
		"bestsellers_rows", res.BestsellersTable.Len())

	counts, err := res.TopClientsTable.Int64Column(OrderCountColumn)
	if err != nil {
		return nil, err
	}
	path, err := charts.WriteFile(opts.OutputDir, HistogramFile, func(w io.Writer) error {
		return charts.OrderCountHistogram(w, counts, opts.HistogramBins)
	})
	if err != nil {
		return nil, err
	}
	res.Charts = append(res.Charts, path)
	logger.Info("Histogram rendered", "path", path)

	names, err := res.BestsellersTable.StringColumn(ProductNameColumn)
	if err != nil {
		return nil, err
	}
	quantities, err := res.BestsellersTable.Int64Column(QuantitySoldColumn)
	if err != nil {
		return nil, err
	}
	path, err = charts.WriteFile(opts.OutputDir, LineChartFile, func(w io.Writer) error {
		return charts.BestsellersLine(w, names, quantities)
	})
	if err != nil {
		return nil, err
	}
	res.Charts = append(res.Charts, path)
	logger.Info("Line chart rendered", "path", path)

	return res, nil
}
