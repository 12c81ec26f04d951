package model

import "time"

// ServiceStatus is the process-wide availability switch. New submissions are
// rejected while Active is false.
type ServiceStatus struct {
	Active    bool
	Message   string
	StoppedAt *time.Time
	StoppedBy string
}
