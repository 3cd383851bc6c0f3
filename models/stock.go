package models

// Stock is one catalog record. JSON keys follow the S&P 500 companies dataset
// the catalog is loaded from, so getStock returns records in their source shape.
type Stock struct {
	Exchange            string   `json:"Exchange,omitempty"`
	Symbol              string   `json:"Symbol"`
	Shortname           string   `json:"Shortname,omitempty"`
	Longname            string   `json:"Longname"`
	Sector              string   `json:"Sector,omitempty"`
	Industry            string   `json:"Industry,omitempty"`
	Currentprice        *float64 `json:"Currentprice,omitempty"`
	Marketcap           *float64 `json:"Marketcap,omitempty"`
	Ebitda              *float64 `json:"Ebitda,omitempty"`
	Revenuegrowth       *float64 `json:"Revenuegrowth,omitempty"`
	City                string   `json:"City,omitempty"`
	State               string   `json:"State,omitempty"`
	Country             string   `json:"Country,omitempty"`
	Fulltimeemployees   *int64   `json:"Fulltimeemployees,omitempty"`
	Longbusinesssummary string   `json:"Longbusinesssummary,omitempty"`
	Weight              float64  `json:"Weight,omitempty"` // index weight, used for ranking
}

// MarketcapOrZero returns the market cap, treating a missing value as 0.
func (s *Stock) MarketcapOrZero() float64 {
	if s.Marketcap == nil {
		return 0
	}
	return *s.Marketcap
}

// EmployeesOrZero returns the head count, treating a missing value as 0.
func (s *Stock) EmployeesOrZero() int64 {
	if s.Fulltimeemployees == nil {
		return 0
	}
	return *s.Fulltimeemployees
}

// Property returns the value of a record field by its source key, as used by
// stock comparison. ok is false for unknown keys and missing optional values.
func (s *Stock) Property(key string) (any, bool) {
	switch key {
	case "Exchange":
		return s.Exchange, s.Exchange != ""
	case "Symbol":
		return s.Symbol, true
	case "Shortname":
		return s.Shortname, s.Shortname != ""
	case "Longname":
		return s.Longname, true
	case "Sector":
		return s.Sector, s.Sector != ""
	case "Industry":
		return s.Industry, s.Industry != ""
	case "Currentprice":
		return derefFloat(s.Currentprice)
	case "Marketcap":
		return derefFloat(s.Marketcap)
	case "Ebitda":
		return derefFloat(s.Ebitda)
	case "Revenuegrowth":
		return derefFloat(s.Revenuegrowth)
	case "City":
		return s.City, s.City != ""
	case "State":
		return s.State, s.State != ""
	case "Country":
		return s.Country, s.Country != ""
	case "Fulltimeemployees":
		if s.Fulltimeemployees == nil {
			return nil, false
		}
		return *s.Fulltimeemployees, true
	case "Longbusinesssummary":
		return s.Longbusinesssummary, s.Longbusinesssummary != ""
	case "Weight":
		return s.Weight, true
	}
	return nil, false
}

func derefFloat(f *float64) (any, bool) {
	if f == nil {
		return nil, false
	}
	return *f, true
}

// StockSummary is the projected view returned by stock queries. Optional
// fields are only set when the caller asked for them.
type StockSummary struct {
	Name      string   `json:"name"`
	Symbol    string   `json:"symbol"`
	Marketcap *float64 `json:"marketcap,omitempty"`
	Sector    *string  `json:"sector,omitempty"`
	Industry  *string  `json:"industry,omitempty"`
}

// Summary returns the base {name, symbol} projection of s.
func (s *Stock) Summary() StockSummary {
	return StockSummary{Name: s.Longname, Symbol: s.Symbol}
}
