package utils

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

const defaultPhoneRegion = "IN"

// ValidatePhoneValue parses and normalizes a phone number submitted as
// a field edit. Returns the E.164 form on success.
func ValidatePhoneValue(value string) (string, error) {
	parsed, err := phonenumbers.Parse(value, defaultPhoneRegion)
	if err != nil {
		return "", fmt.Errorf("invalid phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", fmt.Errorf("invalid phone number: %s", value)
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}
