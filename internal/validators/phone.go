package validators

import (
	"github.com/nyaruka/phonenumbers"

	"github.com/pro-master/backend/internal/httperr"
)

var ErrInvalidPhone = httperr.Invalid("invalid_phone_number", "Enter a valid phone number.")

// NormalizePhone parses a number, local numbers relative to region, and
// returns it in E.164.
func NormalizePhone(raw, region string) (string, error) {
	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return "", ErrInvalidPhone
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidPhone
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
