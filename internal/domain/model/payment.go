package model

// PaymentExtraction is the output of the external OCR collaborator for a
// payment screenshot. The verifier gate consumes this shape only.
type PaymentExtraction struct {
	RawText       string
	ReceiverName  string
	ReceiverPhone string
}

// PaymentVerification is the decision produced by the verifier gate.
type PaymentVerification struct {
	Accepted      bool
	TransactionID string
	Reasons       []string
}
