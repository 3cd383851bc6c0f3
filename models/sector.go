package models

// CompanyRef is the member summary listed under a sector aggregate.
type CompanyRef struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	Marketcap *float64 `json:"marketcap,omitempty"`
	Industry  string   `json:"industry,omitempty"`
}

// SectorAggregate is a per-sector rollup. It is derived on every request and
// never cached.
type SectorAggregate struct {
	Sector                string         `json:"sector"`
	Count                 int            `json:"count"`
	TotalMarketcap        float64        `json:"totalMarketcap"`
	AverageMarketcap      float64        `json:"averageMarketcap"`
	TotalEmployees        int64          `json:"totalEmployees"`
	AverageEmployees      float64        `json:"averageEmployees"`
	TotalRevenuegrowth    float64        `json:"totalRevenuegrowth"`
	AverageRevenuegrowth  float64        `json:"averageRevenuegrowth"`
	RevenuegrowthReported int            `json:"revenuegrowthReported"`
	Companies             []CompanyRef   `json:"companies"`
	Industries            map[string]int `json:"industries"`
}
