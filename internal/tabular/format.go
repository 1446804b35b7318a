package tabular

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"gougewatch/internal/model"
)

// FormatNumber formats a numeric cell for its column kind.
func FormatNumber(v float64, kind Kind, key string) string {
	switch kind {
	case KindCurrency:
		return Currency(v)
	case KindPercent:
		// Wire values are fractions; shown as whole percentages.
		return fmt.Sprintf("%.0f%%", v*100)
	default:
		if key == "bedrooms" {
			return fmt.Sprintf("%dBR", int(v))
		}
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", v), "0"), ".")
	}
}

// FormatText formats a text cell: dates pass through as YYYY-MM-DD, other text
// is title-cased.
func FormatText(s string, kind Kind) string {
	switch kind {
	case KindDate:
		if t, err := model.ParseDate(s); err == nil {
			return t.Format(model.DateLayout)
		}
		return s
	case KindLink:
		return s
	default:
		return titleCase(s)
	}
}

// Currency renders a dollar amount with thousands separators and no cents.
func Currency(v float64) string {
	neg := v < 0
	n := int64(math.Round(math.Abs(v)))

	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

// CombineAddress joins a street address with its city, both title-cased, the
// way the listings table displays them.
func CombineAddress(address, city string) string {
	a := titleCase(address)
	c := titleCase(city)
	if c == "" {
		return a
	}
	return a + ", " + c
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
