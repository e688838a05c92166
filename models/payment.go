package models

// CheckoutSessionRequest carries the inputs the payment provider needs
// to open a hosted checkout page.
type CheckoutSessionRequest struct {
	UserID     string `json:"userId" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Name       string `json:"name"`
	PriceID    string `json:"priceId" binding:"required"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

// PortalSessionRequest opens the provider's self-service billing portal.
type PortalSessionRequest struct {
	CustomerID string `json:"customerId" binding:"required"`
	ReturnURL  string `json:"returnUrl"`
}

// PaymentSession is the provider's answer: where to send the browser.
type PaymentSession struct {
	SessionID string `json:"sessionId,omitempty"`
	URL       string `json:"url"`
}
