package service

const (
	ErrCodeDatabase           = "DATABASE_ERROR"
	ErrCodeAIService          = "AI_SERVICE_ERROR"
	ErrCodeBusinessNotFound   = "BUSINESS_NOT_FOUND"
	ErrCodeMissingParameter   = "MISSING_PARAMETER"
	ErrCodeVerificationFailed = "VERIFICATION_FAILED"
	ErrCodeInvalidSignature   = "INVALID_SIGNATURE"
	ErrCodeInvalidRequestBody = "INVALID_REQUEST_BODY"
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}
