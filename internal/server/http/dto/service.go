package dto

import "time"

// StopServiceRequest carries the operator's optional stop note.
type StopServiceRequest struct {
	Message string `json:"message"`
}

// ServiceStatusResponse reports whether submissions are open.
type ServiceStatusResponse struct {
	Active    bool       `json:"active"`
	Message   string     `json:"message,omitempty"`
	StoppedAt *time.Time `json:"stopped_at,omitempty"`
	StoppedBy string     `json:"stopped_by,omitempty"`
}
