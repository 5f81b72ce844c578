package domain

import "time"

// RequestState is the lifecycle state of a service request.
type RequestState int

const (
	StatePending RequestState = iota
	StateAccepted
	StateDeclined
	StateInProgress
	StateCompleted
	StateCancelled
)

func (s RequestState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAccepted:
		return "accepted"
	case StateDeclined:
		return "declined"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Cancellable reports whether the request may still be cancelled.
// Completed and declined requests are final; everything else, including an
// already cancelled request, accepts a cancel.
func (s RequestState) Cancellable() bool {
	return s != StateCompleted && s != StateDeclined
}

// ServiceRequest is a client-to-professional work order.
type ServiceRequest struct {
	ID                int64        `json:"id"`
	ClientID          string       `json:"clientId"`
	ProfessionalID    string       `json:"professionalId"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	Category          *string      `json:"category,omitempty"`
	Location          *string      `json:"location,omitempty"`
	AgreedPrice       float64      `json:"agreedPrice"`
	State             RequestState `json:"state"`
	RequestedAt       time.Time    `json:"requestedAt"`
	AcceptedAt        *time.Time   `json:"acceptedAt,omitempty"`
	CompletedAt       *time.Time   `json:"completedAt,omitempty"`
	ProfessionalReply *string      `json:"professionalReply,omitempty"`
}
