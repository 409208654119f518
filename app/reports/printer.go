package reports

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/mytheresa/orders-report/models"
)

type palette struct {
	name  *color.Color
	count *color.Color
}

// paletteFor colors only writers that are terminals, and honors NO_COLOR.
func paletteFor(w io.Writer) palette {
	p := palette{
		name:  color.New(color.FgCyan),
		count: color.New(color.FgGreen, color.Bold),
	}
	if isTerminal(w) && os.Getenv("NO_COLOR") == "" {
		p.name.EnableColor()
		p.count.EnableColor()
	} else {
		p.name.DisableColor()
		p.count.DisableColor()
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PrintTopClients writes one "Customer: <name>: Orders: <n>" line per row.
func PrintTopClients(w io.Writer, rows []models.ClientOrderCount) error {
	p := paletteFor(w)
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "Customer: %s: Orders: %s\n",
			p.name.Sprint(r.Name), p.count.Sprint(r.OrderCount)); err != nil {
			return err
		}
	}
	return nil
}

// PrintBestsellers writes one "Product: <name>: Category: <category>: Quantity: <n>" line per row.
func PrintBestsellers(w io.Writer, rows []models.Bestseller) error {
	p := paletteFor(w)
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "Product: %s: Category: %s: Quantity: %s\n",
			p.name.Sprint(r.Name), r.Category, p.count.Sprint(r.QuantitySold)); err != nil {
			return err
		}
	}
	return nil
}
