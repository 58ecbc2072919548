package httperr

import "errors"

type Kind int

const (
	KindInvalid Kind = iota
	KindNotFound
	KindForbidden
	KindUnauthorized
)

// BusinessError is a terminal, caller-facing failure. Values are comparable,
// so sentinel errors declared with the constructors below work with errors.Is.
type BusinessError struct {
	Code    string
	Message string
	Kind    Kind
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func Invalid(code, message string) error {
	return BusinessError{Code: code, Message: message, Kind: KindInvalid}
}

func Missing(code, message string) error {
	return BusinessError{Code: code, Message: message, Kind: KindNotFound}
}

func Denied(code, message string) error {
	return BusinessError{Code: code, Message: message, Kind: KindForbidden}
}

func Unauthenticated(code, message string) error {
	return BusinessError{Code: code, Message: message, Kind: KindUnauthorized}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

var (
	ErrNotAuthenticated = Unauthenticated("not_authenticated", "Authentication credentials were not provided.")
	ErrForbidden        = Denied("permission_denied", "You do not have permission to perform this action.")
)
