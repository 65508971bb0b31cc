package whatsapp

const (
	ErrorCodeServerError  = "SERVER_ERROR"  // 5xx from the Graph API
	ErrorCodeTimeout      = "TIMEOUT"       // context timeout
	ErrorCodeUnauthorized = "UNAUTHORIZED"  // 401/403, bad or expired token
	ErrorCodeBadRequest   = "BAD_REQUEST"   // 400/404, bad media id or recipient
	ErrorCodeNetworkError = "NETWORK_ERROR" // connection failures
)
