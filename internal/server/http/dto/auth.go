package dto

// AuthRequest describes the operator login payload.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}
