package paystack

import "errors"

const (
	StatusOK           = 200
	StatusBadRequest   = 400
	StatusUnauthorized = 401
	StatusNotFound     = 404
)

const (
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeTransactionNotFound = "TRANSACTION_NOT_FOUND"
	ErrCodeTimeout             = "TIMEOUT"
	ErrCodeServerError         = "SERVER_ERROR"
)

var (
	ErrValidationFailed    = errors.New(ErrCodeValidationFailed)
	ErrUnauthorized        = errors.New(ErrCodeUnauthorized)
	ErrTransactionNotFound = errors.New(ErrCodeTransactionNotFound)
	ErrTimeout             = errors.New(ErrCodeTimeout)
	ErrServerError         = errors.New(ErrCodeServerError)
)

var statusErrorMap = map[int]error{
	StatusBadRequest:   ErrValidationFailed,
	StatusUnauthorized: ErrUnauthorized,
	StatusNotFound:     ErrTransactionNotFound,
}

func MapStatusToError(statusCode int) error {
	if err, exists := statusErrorMap[statusCode]; exists {
		return err
	}

	return ErrServerError
}
