package tabular

// Kind is a column's display format.
type Kind string

const (
	KindText     Kind = "text"
	KindDate     Kind = "date"
	KindPercent  Kind = "percent"
	KindCurrency Kind = "currency"
	KindLink     Kind = "link"
)

// Column describes one listings column: its source key, display name, format,
// and whether it is shown by default.
type Column struct {
	Key     string
	Name    string
	Display bool
	Format  Kind
}

// ListingColumns is the ordered listings column configuration. Hidden columns
// are still fetched; they are available to structured sinks but omitted from
// rendered tables.
func ListingColumns() []Column {
	return []Column{
		{Key: "listing_url", Name: "Link", Display: true, Format: KindLink},
		{Key: "address", Name: "Address", Display: true, Format: KindText},
		{Key: "zipcode", Name: "Zip Code", Display: false, Format: KindText},
		{Key: "city", Name: "City", Display: true, Format: KindText},
		{Key: "bedrooms", Name: "Type", Display: true, Format: KindText},
		{Key: "home_type", Name: "Home Type", Display: false, Format: KindText},
		{Key: "fair_market_rent", Name: "Fair Market Rent", Display: false, Format: KindCurrency},
		{Key: "base_price", Name: "Base Price", Display: true, Format: KindCurrency},
		{Key: "max_legal_rent", Name: "Max Legal Rent", Display: false, Format: KindCurrency},
		{Key: "base_price_date", Name: "Base Price Date", Display: false, Format: KindDate},
		{Key: "emergency_peak_price", Name: "Emergency Peak Price", Display: false, Format: KindCurrency},
		{Key: "emergency_peak_price_date", Name: "Emergency Peak Price Date", Display: false, Format: KindDate},
		{Key: "latest_price", Name: "Price", Display: true, Format: KindCurrency},
		{Key: "latest_price_date", Name: "Latest Price Date", Display: false, Format: KindDate},
		{Key: "peak_price_vs_fmr", Name: "Peak Price vs FMR", Display: false, Format: KindPercent},
		{Key: "base_vs_peak_price", Name: "Base vs Peak Price", Display: false, Format: KindPercent},
		{Key: "base_vs_latest_price", Name: "% Increase", Display: true, Format: KindPercent},
		{Key: "first_gouged_price", Name: "First Gouged Price", Display: false, Format: KindCurrency},
		{Key: "first_gouged_date", Name: "First Gouged Date", Display: false, Format: KindDate},
	}
}

// Table height bounds for rendered tables, in pixels.
const (
	MinTableHeight = 200
	MaxTableHeight = 600
	RowHeight      = 42
)

// TableHeight clamps numRows*RowHeight into [MinTableHeight, MaxTableHeight].
func TableHeight(numRows int) int {
	h := numRows * RowHeight
	if h < MinTableHeight {
		return MinTableHeight
	}
	if h > MaxTableHeight {
		return MaxTableHeight
	}
	return h
}
