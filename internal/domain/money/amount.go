package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid money amount")

// Amount is a monetary value in cents.
type Amount int64

const Zero Amount = 0

func FromCents(cents int64) Amount {
	return Amount(cents)
}

// Parse reads decimal strings with at most two fractional digits ("8.5", "8.50", "-1.2", "100").
func Parse(raw string) (Amount, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}

	negative := false
	switch value[0] {
	case '-':
		negative = true
		value = value[1:]
	case '+':
		value = value[1:]
	}

	whole, frac, hasFrac := strings.Cut(value, ".")
	if whole == "" && (!hasFrac || frac == "") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if !allDigits(whole) || !allDigits(frac) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: %q has more than two decimals", ErrInvalidAmount, raw)
	}
	if whole == "" {
		whole = "0"
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > math.MaxInt64/100-1 {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, raw)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}

	out := units*100 + cents
	if negative {
		out = -out
	}
	return Amount(out), nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func MustParse(raw string) Amount {
	out, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return out
}

func (a Amount) Cents() int64 {
	return int64(a)
}

// String formats the amount with exactly two decimals.
func (a Amount) String() string {
	cents := int64(a)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func Sum(values ...Amount) Amount {
	var total Amount
	for _, v := range values {
		total += v
	}
	return total
}
