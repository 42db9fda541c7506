package api

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice parses a price typed with a comma (or dot) as decimal separator.
func ParsePrice(s string) (float64, error) {
	normalized := strings.Replace(strings.TrimSpace(s), ",", ".", 1)
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}

	f, _ := d.Float64()
	return f, nil
}

// FormatPrice renders an amount using a comma as decimal separator.
func FormatPrice(v float64) string {
	return strings.Replace(decimal.NewFromFloat(v).String(), ".", ",", 1)
}

// DisplayPrice renders an amount in reais, e.g. "R$ 5,29".
func DisplayPrice(v float64) string {
	return "R$ " + FormatPrice(v)
}
