package httperr

import "errors"

// Códigos de negócio usados pelos engines; mapeados para 4xx nos handlers.
const (
	CodeInvalidAmount        = "invalid_amount"
	CodeInvalidDuration      = "invalid_duration"
	CodeSameAccount          = "same_account"
	CodeAccountNotFound      = "account_not_found"
	CodeServiceNotFound      = "service_not_found"
	CodeInsufficientFunds    = "insufficient_funds"
	CodeProtectedTransaction = "protected_transaction"
	CodeTimeConflict         = "time_conflict"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extrai o código de negócio, se houver.
func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
