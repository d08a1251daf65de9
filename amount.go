package emvqr

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const amountPlaces = 2

// maxIntegerDigits leaves room for the point and the fraction digits.
const maxIntegerDigits = MaxAmountLength - amountPlaces - 1

// ParseAmount parses a plain decimal amount such as "12" or "12.5": an
// optional sign, digits and at most one '.'. Exponents, "NaN" and "Inf"
// are a ValidationError. The sign is checked later, by FormatAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, &ValidationError{Field: "amount", Rule: "required", Message: "amount is empty"}
	}
	if !isPlainDecimal(s) {
		return decimal.Decimal{}, &ValidationError{Field: "amount", Rule: "numeric", Message: "amount must be digits with an optional decimal point"}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, &ValidationError{Field: "amount", Rule: "numeric", Message: err.Error()}
	}
	return d, nil
}

// isPlainDecimal accepts [+-]digits[.digits] with at least one digit.
func isPlainDecimal(s string) bool {
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	digits, dot := 0, false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return digits > 0
}

// AmountFromFloat converts f using its shortest decimal representation, so
// 2.675 stays 2.675 and formats as "2.68".
func AmountFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, &ValidationError{Field: "amount", Rule: "finite", Message: fmt.Sprintf("%v is not a finite number", f)}
	}
	return decimal.NewFromFloat(f), nil
}

// FormatAmount renders the tag 54 value: exactly two fraction digits,
// rounded half up ("5.005" -> "5.01", "0.125" -> "0.13").
func FormatAmount(d decimal.Decimal) (string, error) {
	if d.IsNegative() {
		return "", &ValidationError{Field: "amount", Rule: "non_negative", Message: "amount is negative"}
	}

	// The size is read from the coefficient and exponent, since both
	// StringFixed and Cmp expand the exponent. d < 10^magnitude.
	if d.IsZero() {
		d = decimal.Zero
	} else {
		magnitude := d.NumDigits() + int(d.Exponent())
		if magnitude > maxIntegerDigits {
			return "", amountTooLong()
		}
		if magnitude < -amountPlaces {
			d = decimal.Zero
		}
	}

	// StringFixed rounds half away from zero, which is half up for
	// non-negative values.
	s := d.StringFixed(amountPlaces)
	if len(s) > MaxAmountLength {
		return "", amountTooLong()
	}
	return s, nil
}

func amountTooLong() *ValidationError {
	return &ValidationError{Field: "amount", Rule: "length", Message: fmt.Sprintf("formatted amount exceeds %d characters", MaxAmountLength)}
}
