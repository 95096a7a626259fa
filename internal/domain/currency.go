package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyScale is the number of fractional digits kept by Currency.
const CurrencyScale = 4

var (
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
	minMinorUnits = decimal.NewFromInt(math.MinInt64)
)

// Currency is an exact money value stored as an integer count of minor units
// (1/10000 of the display unit). Values are immutable: every operation returns
// a new Currency.
type Currency struct {
	minor int64
}

// Zero is the zero amount.
var Zero = Currency{}

// NewCurrency builds a Currency from a count of minor units.
func NewCurrency(minor int64) Currency {
	return Currency{minor: minor}
}

// NewCurrencyFromDecimal scales d into minor units, truncating anything past
// four fractional digits.
func NewCurrencyFromDecimal(d decimal.Decimal) (Currency, error) {
	scaled := d.Truncate(CurrencyScale).Shift(CurrencyScale)
	if scaled.GreaterThan(maxMinorUnits) || scaled.LessThan(minMinorUnits) {
		return Zero, fmt.Errorf("%w: %s out of range", ErrInvalidAmount, d.String())
	}
	return Currency{minor: scaled.IntPart()}, nil
}

// MustCurrency parses s and panics on failure. Meant for tests and constants.
func MustCurrency(s string) Currency {
	c, err := ParseCurrency(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCurrency parses a decimal string. The empty string is zero.
func ParseCurrency(s string) (Currency, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return NewCurrencyFromDecimal(d)
}

func (c Currency) MinorUnits() int64     { return c.minor }
func (c Currency) IsZero() bool          { return c.minor == 0 }
func (c Currency) IsNegative() bool      { return c.minor < 0 }
func (c Currency) Equal(o Currency) bool { return c.minor == o.minor }

// CheckedAdd returns c + o and true, or Zero and false if the sum overflows.
func (c Currency) CheckedAdd(o Currency) (Currency, bool) {
	sum := c.minor + o.minor
	if (o.minor > 0 && sum < c.minor) || (o.minor < 0 && sum > c.minor) {
		return Zero, false
	}
	return Currency{minor: sum}, true
}

// CheckedSub returns c - o and true when c >= o and the difference fits.
// Otherwise it returns Zero and false.
func (c Currency) CheckedSub(o Currency) (Currency, bool) {
	if c.minor < o.minor {
		return Zero, false
	}
	return c.SignedSub(o)
}

// SignedSub returns c - o and true, allowing a negative result. It returns
// Zero and false only if the difference overflows.
func (c Currency) SignedSub(o Currency) (Currency, bool) {
	diff := c.minor - o.minor
	if (o.minor > 0 && diff > c.minor) || (o.minor < 0 && diff < c.minor) {
		return Zero, false
	}
	return Currency{minor: diff}, true
}

// Decimal returns the value as a decimal in display units.
func (c Currency) Decimal() decimal.Decimal {
	return decimal.New(c.minor, -CurrencyScale)
}

// String formats the value with exactly four fractional digits.
func (c Currency) String() string {
	return c.Decimal().StringFixed(CurrencyScale)
}

// MarshalText implements encoding.TextMarshaler.
func (c Currency) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Currency) UnmarshalText(text []byte) error {
	parsed, err := ParseCurrency(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
