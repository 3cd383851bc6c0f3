package loader

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"stock-query/models"
)

// Supported catalog file formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

//go:embed data/sp500_companies.json
var defaultCompanies []byte

// Default returns the embedded S&P 500 sample catalog.
func Default() ([]models.Stock, error) {
	return DecodeCompanies(bytes.NewReader(defaultCompanies))
}

// Load reads a catalog file in the given format. An empty path loads the
// embedded catalog.
func Load(filePath, format string) ([]models.Stock, error) {
	if filePath == "" {
		return Default()
	}
	switch strings.ToLower(format) {
	case "", FormatJSON:
		return LoadCompanies(filePath)
	case FormatCSV:
		return LoadCompaniesCSV(filePath)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
}

// LoadCompanies reads a JSON array of company records.
func LoadCompanies(filePath string) ([]models.Stock, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeCompanies(f)
}

func DecodeCompanies(r io.Reader) ([]models.Stock, error) {
	var stocks []models.Stock
	if err := json.NewDecoder(r).Decode(&stocks); err != nil {
		return nil, fmt.Errorf("decode companies: %w", err)
	}

	out := stocks[:0]
	for _, s := range stocks {
		s.Symbol = models.CanonicalSymbol(s.Symbol)
		if s.Symbol == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// LoadCompaniesCSV reads a CSV catalog whose header row names the record
// fields (Symbol, Longname, Sector, Marketcap, ...). Unknown columns are ignored.
func LoadCompaniesCSV(filePath string) ([]models.Stock, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeCompaniesCSV(f)
}

func DecodeCompaniesCSV(r io.Reader) ([]models.Stock, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["symbol"]; !ok {
		return nil, fmt.Errorf("csv header has no Symbol column")
	}

	var stocks []models.Stock
	for line, record := range records[1:] {
		row := csvRow{columns: columns, record: record}
		stock := models.Stock{
			Exchange:            row.str("exchange"),
			Symbol:              models.CanonicalSymbol(row.str("symbol")),
			Shortname:           row.str("shortname"),
			Longname:            row.str("longname"),
			Sector:              row.str("sector"),
			Industry:            row.str("industry"),
			City:                row.str("city"),
			State:               row.str("state"),
			Country:             row.str("country"),
			Longbusinesssummary: row.str("longbusinesssummary"),
		}
		if stock.Symbol == "" {
			continue
		}
		if stock.Currentprice, err = row.float("currentprice"); err != nil {
			return nil, fmt.Errorf("line %d: %w", line+2, err)
		}
		if stock.Marketcap, err = row.float("marketcap"); err != nil {
			return nil, fmt.Errorf("line %d: %w", line+2, err)
		}
		if stock.Ebitda, err = row.float("ebitda"); err != nil {
			return nil, fmt.Errorf("line %d: %w", line+2, err)
		}
		if stock.Revenuegrowth, err = row.float("revenuegrowth"); err != nil {
			return nil, fmt.Errorf("line %d: %w", line+2, err)
		}
		if stock.Fulltimeemployees, err = row.int("fulltimeemployees"); err != nil {
			return nil, fmt.Errorf("line %d: %w", line+2, err)
		}
		weight, err := row.float("weight")
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+2, err)
		}
		if weight != nil {
			stock.Weight = *weight
		}
		stocks = append(stocks, stock)
	}

	return stocks, nil
}

type csvRow struct {
	columns map[string]int
	record  []string
}

func (r csvRow) str(name string) string {
	i, ok := r.columns[name]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

// float parses an optional numeric cell; empty cells are absent, not zero.
func (r csvRow) float(name string) (*float64, error) {
	v := r.str(name)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", name, err)
	}
	return &f, nil
}

func (r csvRow) int(name string) (*int64, error) {
	v := r.str(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", name, err)
	}
	return &n, nil
}
