package v1

// Message is deliberately not required: an empty message gets the fixed
// "I didn't catch that." response from the chat service, not a 422.
type ChatRequest struct {
	Message string `json:"message"`
}
