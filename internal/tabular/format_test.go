package tabular

import "testing"

func TestCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{950, "$950"},
		{1500, "$1,500"},
		{2499.6, "$2,500"},
		{1234567, "$1,234,567"},
		{-1200, "-$1,200"},
	}
	for _, c := range cases {
		if got := Currency(c.in); got != c.want {
			t.Errorf("Currency(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(1850, KindCurrency, "base_price"); got != "$1,850" {
		t.Errorf("currency: got %q", got)
	}
	// Percent columns arrive as fractions and render as whole percentages.
	if got := FormatNumber(0.42, KindPercent, "base_vs_latest_price"); got != "42%" {
		t.Errorf("percent: got %q", got)
	}
	if got := FormatNumber(3, KindText, "bedrooms"); got != "3BR" {
		t.Errorf("bedrooms: got %q", got)
	}
	if got := FormatNumber(2.5, KindText, "other"); got != "2.5" {
		t.Errorf("plain number: got %q", got)
	}
}

func TestFormatText(t *testing.T) {
	if got := FormatText("2025-01-12T00:00:00", KindDate); got != "2025-01-12" {
		t.Errorf("date: got %q", got)
	}
	if got := FormatText("not a date", KindDate); got != "not a date" {
		t.Errorf("bad date passthrough: got %q", got)
	}
	if got := FormatText("https://example.com/listing/1", KindLink); got != "https://example.com/listing/1" {
		t.Errorf("link passthrough: got %q", got)
	}
	if got := FormatText("SANTA MONICA", KindText); got != "Santa Monica" {
		t.Errorf("title case: got %q", got)
	}
}

func TestCombineAddress(t *testing.T) {
	if got := CombineAddress("123 MAIN ST", "pasadena"); got != "123 Main St, Pasadena" {
		t.Errorf("got %q", got)
	}
	if got := CombineAddress("123 Main St", ""); got != "123 Main St" {
		t.Errorf("no city: got %q", got)
	}
	if got := CombineAddress("456 ÁLAMO AVE", "LA CAÑADA FLINTRIDGE"); got != "456 Álamo Ave, La Cañada Flintridge" {
		t.Errorf("accented: got %q", got)
	}
}

func TestTableHeight(t *testing.T) {
	cases := []struct {
		rows int
		want int
	}{
		{0, MinTableHeight},
		{3, MinTableHeight},
		{5, 210},
		{10, 420},
		{100, MaxTableHeight},
	}
	for _, c := range cases {
		if got := TableHeight(c.rows); got != c.want {
			t.Errorf("TableHeight(%d) = %d, want %d", c.rows, got, c.want)
		}
	}
}

func TestListingColumns_DisplaySet(t *testing.T) {
	var display []string
	for _, c := range ListingColumns() {
		if c.Display {
			display = append(display, c.Key)
		}
	}

	want := []string{"listing_url", "address", "city", "bedrooms", "base_price", "latest_price", "base_vs_latest_price"}
	if len(display) != len(want) {
		t.Fatalf("display columns = %v, want %v", display, want)
	}
	for i := range want {
		if display[i] != want[i] {
			t.Fatalf("display columns = %v, want %v", display, want)
		}
	}
}
