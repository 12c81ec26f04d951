package dto

// VerifyPaymentResponse reports the verifier gate's decision.
type VerifyPaymentResponse struct {
	Verified      bool     `json:"verified"`
	TransactionID string   `json:"transaction_id,omitempty"`
	Reasons       []string `json:"reasons,omitempty"`
}

// UPIIDResponse exposes the shop's UPI address for paying.
type UPIIDResponse struct {
	UPIID string `json:"upi_id"`
}
