package charts

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samber/lo"
)

const (
	DefaultBins = 10

	HistogramTitle  = "Distribution of Order Counts per Customer"
	BestsellerTitle = "Product Quantities Sold"
)

// Bin is one histogram bucket. Lower is inclusive; Upper is exclusive except
// for the last bucket.
type Bin struct {
	Lower float64
	Upper float64
	Count int
}

func (b Bin) Label() string {
	if b.Lower == b.Upper {
		return formatFloat(b.Lower)
	}
	return formatFloat(b.Lower) + "-" + formatFloat(b.Upper)
}

// Bins spreads values over n equal-width buckets between their minimum and
// maximum. When every value is the same there is a single bucket.
func Bins(values []int64, n int) []Bin {
	if len(values) == 0 || n <= 0 {
		return nil
	}
	low, high := lo.Min(values), lo.Max(values)
	if low == high {
		return []Bin{{Lower: float64(low), Upper: float64(high), Count: len(values)}}
	}

	width := float64(high-low) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lower = float64(low) + float64(i)*width
		bins[i].Upper = bins[i].Lower + width
	}
	bins[n-1].Upper = float64(high)

	for _, v := range values {
		idx := int(float64(v-low) / width)
		if idx >= n {
			idx = n - 1
		}
		bins[idx].Count++
	}
	return bins
}

// OrderCountHistogram renders the distribution of orders per customer as an
// interactive HTML page.
func OrderCountHistogram(w io.Writer, counts []int64, bins int) error {
	if bins <= 0 {
		bins = DefaultBins
	}
	buckets := Bins(counts, bins)

	bar := echarts.NewBar()
	bar.SetGlobalOptions(
		echarts.WithInitializationOpts(opts.Initialization{PageTitle: HistogramTitle, Width: "900px", Height: "500px"}),
		echarts.WithTitleOpts(opts.Title{Title: HistogramTitle}),
		echarts.WithXAxisOpts(opts.XAxis{Name: "Number of Orders"}),
		echarts.WithYAxisOpts(opts.YAxis{Name: "Number of Customers"}),
	)
	bar.SetXAxis(lo.Map(buckets, func(b Bin, _ int) string { return b.Label() })).
		AddSeries("Customers", lo.Map(buckets, func(b Bin, _ int) opts.BarData {
			return opts.BarData{Name: b.Label(), Value: b.Count}
		}))

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render histogram: %w", err)
	}
	return nil
}

// BestsellersLine renders quantity sold per product name as an interactive
// HTML line chart.
func BestsellersLine(w io.Writer, names []string, quantities []int64) error {
	if len(names) != len(quantities) {
		return fmt.Errorf("render line chart: %d names for %d quantities", len(names), len(quantities))
	}

	line := echarts.NewLine()
	line.SetGlobalOptions(
		echarts.WithInitializationOpts(opts.Initialization{PageTitle: BestsellerTitle, Width: "1000px", Height: "600px"}),
		echarts.WithTitleOpts(opts.Title{Title: BestsellerTitle}),
		echarts.WithXAxisOpts(opts.XAxis{Name: "Product Name", AxisLabel: &opts.AxisLabel{Rotate: 45}}),
		echarts.WithYAxisOpts(opts.YAxis{Name: "Quantity Sold"}),
	)
	line.SetXAxis(names).
		AddSeries("Quantity Sold", lo.Map(quantities, func(q int64, _ int) opts.LineData {
			return opts.LineData{Value: q}
		}))

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render line chart: %w", err)
	}
	return nil
}

// WriteFile renders into dir/name, creating dir when needed, and returns the file path.
func WriteFile(dir, name string, render func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := render(f); err != nil {
		return "", err
	}
	return path, f.Close()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}
