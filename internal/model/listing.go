package model

// Listing is one gouged rental listing row.
//
// Date columns arrive as YYYY-MM-DD strings; ratio columns (percent formats)
// arrive as fractions (0.35 = 35%).
type Listing struct {
	ListingURL             string  `json:"listing_url"`
	Address                string  `json:"address"`
	Zipcode                string  `json:"zipcode"`
	City                   string  `json:"city"`
	Bedrooms               float64 `json:"bedrooms"`
	HomeType               string  `json:"home_type"`
	FairMarketRent         float64 `json:"fair_market_rent"`
	BasePrice              float64 `json:"base_price"`
	MaxLegalRent           float64 `json:"max_legal_rent"`
	BasePriceDate          string  `json:"base_price_date"`
	EmergencyPeakPrice     float64 `json:"emergency_peak_price"`
	EmergencyPeakPriceDate string  `json:"emergency_peak_price_date"`
	LatestPrice            float64 `json:"latest_price"`
	LatestPriceDate        string  `json:"latest_price_date"`
	PeakPriceVsFMR         float64 `json:"peak_price_vs_fmr"`
	BaseVsPeakPrice        float64 `json:"base_vs_peak_price"`
	BaseVsLatestPrice      float64 `json:"base_vs_latest_price"`
	FirstGougedPrice       float64 `json:"first_gouged_price"`
	FirstGougedDate        string  `json:"first_gouged_date"`
}
