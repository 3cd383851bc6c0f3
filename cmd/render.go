package cmd

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"stock-query/models"
)

// usd formats a dollar amount with currency symbol and grouping, rounded to cents.
func usd(amount float64) string {
	cents := decimal.NewFromFloat(amount).Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

func percent(v float64) string {
	return decimal.NewFromFloat(v).Shift(2).StringFixed(2) + "%"
}

func renderStock(w io.Writer, s *models.Stock) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "Symbol\t%s\n", s.Symbol)
	fmt.Fprintf(tw, "Name\t%s\n", s.Longname)
	if s.Exchange != "" {
		fmt.Fprintf(tw, "Exchange\t%s\n", s.Exchange)
	}
	if s.Sector != "" {
		fmt.Fprintf(tw, "Sector\t%s\n", s.Sector)
	}
	if s.Industry != "" {
		fmt.Fprintf(tw, "Industry\t%s\n", s.Industry)
	}
	if s.Currentprice != nil {
		fmt.Fprintf(tw, "Price\t%s\n", usd(*s.Currentprice))
	}
	if s.Marketcap != nil {
		fmt.Fprintf(tw, "Market cap\t%s\n", usd(*s.Marketcap))
	}
	if s.Revenuegrowth != nil {
		fmt.Fprintf(tw, "Revenue growth\t%s\n", percent(*s.Revenuegrowth))
	}
	if s.Fulltimeemployees != nil {
		fmt.Fprintf(tw, "Employees\t%d\n", *s.Fulltimeemployees)
	}
	if s.City != "" || s.State != "" {
		fmt.Fprintf(tw, "Location\t%s %s %s\n", s.City, s.State, s.Country)
	}
}

func renderSectors(w io.Writer, sectors []*models.SectorAggregate) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	defer tw.Flush()

	fmt.Fprintln(tw, "Sector\tCount\tTotal cap\tAvg cap\tAvg employees\tAvg rev. growth\t")
	for _, s := range sectors {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%.0f\t%s\t\n",
			s.Sector, s.Count, usd(s.TotalMarketcap), usd(s.AverageMarketcap),
			s.AverageEmployees, percent(s.AverageRevenuegrowth))
	}

	if len(sectors) != 1 {
		return
	}
	industries := make([]string, 0, len(sectors[0].Industries))
	for name := range sectors[0].Industries {
		industries = append(industries, name)
	}
	sort.Strings(industries)
	fmt.Fprintln(tw, "\t\t\t\t\t\t")
	for _, name := range industries {
		fmt.Fprintf(tw, "%s\t%d\t\t\t\t\t\n", name, sectors[0].Industries[name])
	}
}

func renderSummaries(w io.Writer, results []models.StockSummary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	for _, r := range results {
		sector := ""
		if r.Sector != nil {
			sector = *r.Sector
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Symbol, r.Name, sector)
	}
}
