package validators

import (
	"net"
	"net/mail"
	"strings"

	"github.com/pro-master/backend/internal/httperr"
)

var ErrInvalidEmail = httperr.Invalid("invalid_email", "Enter a valid email address.")

// NormalizeEmail lower-cases and syntax-checks an address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// IsEmailDomainValid looks the domain up in DNS (MX first, then A/AAAA).
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
