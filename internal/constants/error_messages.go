package constants

const MessageErrorFormat = "The '%s' format is invalid"

const (
	ErrCodeDatabase           = "DATABASE_ERROR"
	ErrCodeAIService          = "AI_SERVICE_ERROR"
	ErrCodeBusinessNotFound   = "BUSINESS_NOT_FOUND"
	ErrCodeMissingParameter   = "MISSING_PARAMETER"
	ErrCodeVerificationFailed = "VERIFICATION_FAILED"
	ErrCodeInvalidSignature   = "INVALID_SIGNATURE"
	ErrCodeInvalidRequestBody = "INVALID_REQUEST_BODY"
)

const (
	ErrMsgDatabase           = "Internal server error"
	ErrMsgAIService          = "assistant is unavailable"
	ErrMsgBusinessNotFound   = "business not found"
	ErrMsgMissingParameter   = "missing required parameter"
	ErrMsgVerificationFailed = "verification failed"
	ErrMsgInvalidSignature   = "invalid signature"
	ErrMsgInvalidRequestBody = "failed to parse request body"
)

var errorMessages = map[string]string{
	ErrCodeDatabase:           ErrMsgDatabase,
	ErrCodeAIService:          ErrMsgAIService,
	ErrCodeBusinessNotFound:   ErrMsgBusinessNotFound,
	ErrCodeMissingParameter:   ErrMsgMissingParameter,
	ErrCodeVerificationFailed: ErrMsgVerificationFailed,
	ErrCodeInvalidSignature:   ErrMsgInvalidSignature,
	ErrCodeInvalidRequestBody: ErrMsgInvalidRequestBody,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgDatabase
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeMissingParameter, ErrCodeInvalidRequestBody:
		return 400
	case ErrCodeVerificationFailed, ErrCodeInvalidSignature:
		return 403
	case ErrCodeBusinessNotFound:
		return 404
	case ErrCodeDatabase, ErrCodeAIService:
		return 500
	default:
		return 500
	}
}
