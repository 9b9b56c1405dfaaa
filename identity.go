package investo

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// isinRegex checks for the basic structure: 2 letters, 9 alphanumeric, 1 digit.
var isinRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// currencyCodeRegex checks for the format: 3 uppercase letters.
var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateISIN checks if a string is a validly formatted ISIN (ISO 6166).
// It returns nil if valid, or a descriptive error if invalid.
func ValidateISIN(isin string) error {
	// 1. Length validation
	if len(isin) != 12 {
		return fmt.Errorf("invalid length: must be 12 characters, got %d", len(isin))
	}

	// 2. Format validation
	if !isinRegex.MatchString(isin) {
		return fmt.Errorf("invalid format: must be 2 uppercase letters, 9 alphanumeric chars, and 1 digit")
	}

	// 3. Convert letters to numbers for check digit calculation
	var numericStr strings.Builder
	for _, char := range isin[:11] {
		if char >= 'A' && char <= 'Z' {
			numericStr.WriteString(strconv.Itoa(int(char - 'A' + 10)))
		} else {
			numericStr.WriteRune(char)
		}
	}

	// 4. Apply a variation of the Luhn algorithm
	sum := 0
	isSecond := true
	digits := numericStr.String()
	for i := len(digits) - 1; i >= 0; i-- {
		digit, _ := strconv.Atoi(string(digits[i]))

		if isSecond {
			digit *= 2
		}

		sum += (digit / 10) + (digit % 10)
		isSecond = !isSecond
	}

	// 5. Validate the check digit
	expectedCheckDigit := (10 - (sum % 10)) % 10
	actualCheckDigit, _ := strconv.Atoi(string(isin[11]))

	if expectedCheckDigit != actualCheckDigit {
		return fmt.Errorf("invalid check digit: expected %d, got %d", expectedCheckDigit, actualCheckDigit)
	}

	return nil
}

// Pair is a currency pair identifier following the FX market convention: two
// concatenated ISO 4217 codes, base first then quote. "EURUSD" is the price
// of one euro in US dollars.
type Pair string

// NewPair builds a Pair from a base and quote currency code after validation.
func NewPair(base, quote string) (Pair, error) {
	if !currencyCodeRegex.MatchString(base) {
		return "", fmt.Errorf("invalid base currency format: must be 3 uppercase letters, got %q", base)
	}
	if !currencyCodeRegex.MatchString(quote) {
		return "", fmt.Errorf("invalid quote currency format: must be 3 uppercase letters, got %q", quote)
	}
	return Pair(base + quote), nil
}

// Base returns the base currency of the pair, the currency being priced.
func (p Pair) Base() string {
	if len(p) != 6 {
		return ""
	}
	return string(p)[:3]
}

// Quote returns the quote currency of the pair, the currency of the price.
func (p Pair) Quote() string {
	if len(p) != 6 {
		return ""
	}
	return string(p)[3:]
}

// Inverse returns the reversed pair.
func (p Pair) Inverse() Pair { return Pair(p.Quote() + p.Base()) }

func (p Pair) String() string { return string(p) }
