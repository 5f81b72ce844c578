package domain

import "time"

type ReportKind string

const (
	ReportBadService   ReportKind = "bad_service"
	ReportBadBehaviour ReportKind = "bad_behaviour"
	ReportBadContent   ReportKind = "bad_content"
	ReportOther        ReportKind = "other"
)

type ReportState int

const (
	ReportPending ReportState = iota
	ReportUnderReview
	ReportResolved
	ReportRejected
)

func (s ReportState) String() string {
	switch s {
	case ReportPending:
		return "pending"
	case ReportUnderReview:
		return "under_review"
	case ReportResolved:
		return "resolved"
	case ReportRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Report is a user complaint handled by the moderation workflow.
type Report struct {
	ID          int64       `json:"id"`
	ReporterID  string      `json:"reporterId"`
	ReportedID  string      `json:"reportedId"`
	Kind        ReportKind  `json:"kind"`
	Description string      `json:"description"`
	State       ReportState `json:"state"`
	FiledAt     time.Time   `json:"filedAt"`
	ResolvedAt  *time.Time  `json:"resolvedAt,omitempty"`
	AdminNotes  *string     `json:"adminNotes,omitempty"`
	RequestID   *int64      `json:"requestId,omitempty"`
}
