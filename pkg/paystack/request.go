package paystack

// InitializeRequest starts a transaction. Amount is in the smallest
// currency unit (pesewas/kobo); callers convert from major units.
type InitializeRequest struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency,omitempty"`
	CallbackURL string `json:"callback_url,omitempty"`
}
