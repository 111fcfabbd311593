// Package odds reads American sportsbook prices.
package odds

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var signs = strings.NewReplacer(
	"−", "-", // unicode minus
	"âˆ’", "-", // its UTF-8 bytes decoded as Windows-1252
	"+", "",
)

// ParseAmerican reads a display price such as "+120", "-135" or "−135".
// Zero and magnitudes under 100 are not valid prices.
func ParseAmerican(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(signs.Replace(s)))
	if err != nil || (n > -100 && n < 100) {
		return 0, fmt.Errorf("odds: invalid american price %q", s)
	}
	return n, nil
}

// Normalize renders a price with an ASCII sign, leaving unparsable input unchanged.
func Normalize(s string) string {
	n, err := ParseAmerican(s)
	if err != nil {
		return s
	}
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

var hundred = decimal.NewFromInt(100)

// Win returns the profit of a winning stake at price n.
func Win(stake decimal.Decimal, n int) decimal.Decimal {
	if n > 0 {
		return stake.Mul(decimal.NewFromInt(int64(n))).Div(hundred)
	}
	return stake.Mul(hundred).Div(decimal.NewFromInt(int64(-n)))
}
