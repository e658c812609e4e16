// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "MX"

// Normalize strips every non-digit character from the input. Client phone
// numbers are compared and stored in this digits-only form.
func Normalize(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValid reports whether the normalized number is a plausible ten-digit
// local number. Numbers that parse as valid MX numbers are also accepted
// so callers can paste +52 formatted input.
func IsValid(input string) bool {
	normalized := Normalize(input)
	if len(normalized) == 10 {
		return true
	}

	number, err := phonenumbers.Parse(input, defaultRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(number)
}

// NormalizeLocal returns the digits-only ten-digit national form. Input
// with a country prefix is reduced to its national significant number when
// it parses as a valid number for the default region.
func NormalizeLocal(input string) string {
	normalized := Normalize(input)
	if len(normalized) <= 10 {
		return normalized
	}

	number, err := phonenumbers.Parse(input, defaultRegion)
	if err != nil {
		return normalized
	}
	if !phonenumbers.IsValidNumber(number) {
		return normalized
	}
	return phonenumbers.GetNationalSignificantNumber(number)
}
