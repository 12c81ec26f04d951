package dto

import "time"

// OrderFileResponse describes one uploaded document of an order.
type OrderFileResponse struct {
	Filename  string `json:"filename"`
	ByteSize  int64  `json:"byte_size"`
	PageCount int    `json:"page_count"`
}

// PrintConfigResponse echoes the selected print options.
type PrintConfigResponse struct {
	ColorMode  string `json:"color_mode"`
	PaperType  string `json:"paper_type"`
	PrintSides string `json:"print_sides"`
	PageSize   string `json:"page_size"`
	Copies     int    `json:"copies"`
	Binding    string `json:"binding"`
}

// OrderResponse describes a print order with its queue placement.
type OrderResponse struct {
	ID            string              `json:"id"`
	StudentName   string              `json:"student_name"`
	StudentID     string              `json:"student_id"`
	PhoneNumber   string              `json:"phone_number"`
	Instructions  string              `json:"instructions,omitempty"`
	Files         []OrderFileResponse `json:"files"`
	Config        PrintConfigResponse `json:"print_config"`
	TotalPages    int                 `json:"total_pages"`
	EstimatedCost float64             `json:"estimated_cost"`
	TransactionID string              `json:"transaction_id"`
	FileSize      int64               `json:"file_size"`
	Status        string              `json:"status"`
	QueuePosition int                 `json:"queue_position,omitempty"`
	IsFirst       bool                `json:"is_first"`
	SubmittedAt   time.Time           `json:"submitted_at"`
	CompletedAt   *time.Time          `json:"completed_at,omitempty"`
}

// StatsResponse summarizes the operator dashboard counters.
type StatsResponse struct {
	PendingCount   int `json:"pending_count"`
	CompletedToday int `json:"completed_today"`
}
