package marketvalue

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoToken means the source has no market value for the player
	ErrNoToken = errors.New("no market value token")
	// ErrBadToken means a token was found but could not be parsed
	ErrBadToken = errors.New("unparseable market value token")
)

type unit struct {
	suffix     string
	multiplier decimal.Decimal
}

// Longer suffixes first so "mio." wins over "m"
var units = []unit{
	{"mrd.", decimal.New(1, 9)},
	{"bn", decimal.New(1, 9)},
	{"mio.", decimal.New(1, 6)},
	{"tsd.", decimal.New(1, 3)},
	{"th.", decimal.New(1, 3)},
	{"m", decimal.New(1, 6)},
	{"k", decimal.New(1, 3)},
}

var tokenPattern = regexp.MustCompile(`(?i)([0-9][0-9.,]*)\s*(mrd\.|bn|mio\.|tsd\.|th\.|m|k)(?:[^a-z]|$)`)

// noise is stripped before parsing: currency symbols, the mis-decoded
// prefix byte of "£" and every kind of space
var noise = strings.NewReplacer(
	"€", "", "£", "", "$", "", "Â", "",
	" ", "", " ", "", "\t", "", "\r", "", "\n", "",
)

// ExtractToken finds the first "<number><unit>" in free text such as the
// market value block of a player page. Text after a currency symbol is preferred.
func ExtractToken(text string) (string, error) {
	search := text
	if i := strings.IndexAny(text, "€£$"); i >= 0 {
		search = text[i:]
	}
	m := tokenPattern.FindStringSubmatch(search)
	if m == nil && search != text {
		m = tokenPattern.FindStringSubmatch(text)
	}
	if m == nil {
		return "", ErrNoToken
	}
	return m[1] + m[2], nil
}

// ParseToken converts a raw token like "€15.00m", "£450Th." or "1,50 Mio. €"
// to base currency units.
func ParseToken(token string) (float64, error) {
	s := noise.Replace(strings.TrimSpace(token))
	if s == "" {
		return 0, ErrNoToken
	}

	lower := strings.ToLower(s)
	var multiplier decimal.Decimal
	number := ""
	for _, u := range units {
		if strings.HasSuffix(lower, u.suffix) {
			multiplier = u.multiplier
			number = s[:len(s)-len(u.suffix)]
			break
		}
	}
	if number == "" {
		return 0, fmt.Errorf("%w: %q has no unit", ErrBadToken, token)
	}

	d, err := decimal.NewFromString(normalizeSeparators(number))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadToken, token)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %q is negative", ErrBadToken, token)
	}

	value, _ := d.Mul(multiplier).Float64()
	return value, nil
}

// normalizeSeparators rewrites locale separators to a plain "1234.5" form.
// With both separators the last one is decimal; a lone comma is decimal; repeated commas group thousands.
func normalizeSeparators(n string) string {
	lastComma := strings.LastIndex(n, ",")
	lastDot := strings.LastIndex(n, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			n = strings.ReplaceAll(n, ".", "")
			return strings.Replace(n, ",", ".", 1)
		}
		return strings.ReplaceAll(n, ",", "")
	case strings.Count(n, ",") == 1:
		return strings.Replace(n, ",", ".", 1)
	case lastComma >= 0:
		return strings.ReplaceAll(n, ",", "")
	}
	return n
}
