// Package money provides the fixed point representation used for all
// transaction amounts on the MyCoin blockchain.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Precision is the number of fractional digits carried by every amount.
// Amounts are formatted with exactly this many digits when they are hashed
// or signed, so the textual form is reproducible on every node.
const Precision = 8

// unit is the number of base units in one whole coin.
const unit = 100_000_000

// ErrInvalidAmount is returned when an amount is missing, negative, or not
// representable at the fixed precision.
var ErrInvalidAmount = errors.New("invalid amount")

// =============================================================================

// Amount represents a monetary value as a count of base units. One coin is
// 10^8 base units.
type Amount int64

// Parse converts the textual form of an amount into base units. The text may
// carry up to Precision fractional digits and must not be negative.
func Parse(value string) (Amount, error) {
	if value == "" {
		return 0, fmt.Errorf("empty value: %w", ErrInvalidAmount)
	}

	if strings.HasPrefix(value, "-") || strings.HasPrefix(value, "+") {
		return 0, fmt.Errorf("signed value %q: %w", value, ErrInvalidAmount)
	}

	whole, frac, _ := strings.Cut(value, ".")

	if whole == "" {
		return 0, fmt.Errorf("missing whole digits in %q: %w", value, ErrInvalidAmount)
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", value, ErrInvalidAmount)
	}

	if len(frac) > Precision {
		return 0, fmt.Errorf("more than %d fractional digits in %q: %w", Precision, value, ErrInvalidAmount)
	}

	var f int64
	for _, r := range frac {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("parsing %q: %w", value, ErrInvalidAmount)
		}
		f = f*10 + int64(r-'0')
	}
	for i := len(frac); i < Precision; i++ {
		f *= 10
	}

	if w > (1<<62)/unit {
		return 0, fmt.Errorf("value %q too large: %w", value, ErrInvalidAmount)
	}

	return Amount(w*unit + f), nil
}

// MustParse converts the textual form of an amount and panics when the text
// is malformed. Use only with literal values.
func MustParse(value string) Amount {
	amt, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return amt
}

// String formats the amount with exactly Precision fractional digits. This is
// the canonical form used for hashing and signing.
func (a Amount) String() string {
	return fmt.Sprintf("%d.%08d", int64(a)/unit, int64(a)%unit)
}

// IsValid reports whether the amount is non-negative.
func (a Amount) IsValid() bool {
	return a >= 0
}

// MarshalJSON encodes the amount as its canonical 8 decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(a.String())), nil
}

// UnmarshalJSON accepts either a quoted decimal string or a bare JSON number.
func (a *Amount) UnmarshalJSON(data []byte) error {
	value := string(data)

	if unquoted, err := strconv.Unquote(value); err == nil {
		value = unquoted
	}

	amt, err := Parse(value)
	if err != nil {
		return err
	}

	*a = amt
	return nil
}
