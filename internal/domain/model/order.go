package model

import "time"

// OrderStatus describes the processing lifecycle of a print order.
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "pending"
	OrderStatusCompleted    OrderStatus = "completed"
	OrderStatusNotCompleted OrderStatus = "not_completed"
	OrderStatusDeleted      OrderStatus = "deleted"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusNotCompleted, OrderStatusDeleted:
		return true
	}
	return false
}

// Terminal reports whether the order has left the active pending queue.
func (s OrderStatus) Terminal() bool {
	return s.Valid() && s != OrderStatusPending
}

// Student holds the submitter details printed on the cover page.
type Student struct {
	Name         string
	StudentID    string
	PhoneNumber  string
	Instructions string
}

// OrderFile describes a single uploaded document. Slice order is merge order.
type OrderFile struct {
	Filename  string `json:"filename"`
	ByteSize  int64  `json:"byte_size"`
	PageCount int    `json:"page_count"`
}

// Order is a single print job in the shop queue. SubmittedAt defines FIFO
// ordering; ties are broken by ID.
type Order struct {
	ID            string
	Student       Student
	Files         []OrderFile
	Config        PrintConfig
	TotalPages    int
	EstimatedCost float64
	TransactionID string
	ArtifactRef   string
	FileSize      int64
	Status        OrderStatus
	SubmittedAt   time.Time
	CompletedAt   *time.Time
}

// QueueEntry is an order annotated with its derived queue position.
type QueueEntry struct {
	Order         Order
	QueuePosition int
	IsFirst       bool
}

// QueueStats summarizes the dashboard counters.
type QueueStats struct {
	PendingCount   int
	CompletedToday int
}
