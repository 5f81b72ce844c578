package domain

import "time"

// Rating is a 1..5 score left by a client for a professional after a
// completed service request. At most one rating exists per request; rating
// again overwrites the previous score.
type Rating struct {
	ID             int64      `json:"id"`
	RequestID      int64      `json:"requestId"`
	RaterID        string     `json:"raterId"`
	ProfessionalID string     `json:"professionalId"`
	Score          int        `json:"score"`
	Comment        *string    `json:"comment,omitempty"`
	RatedAt        time.Time  `json:"ratedAt"`
	Reply          *string    `json:"reply,omitempty"`
	RepliedAt      *time.Time `json:"repliedAt,omitempty"`
}
