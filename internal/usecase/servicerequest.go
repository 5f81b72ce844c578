package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edsg/edsg/internal/domain"
)

// RequestRepository defines persistence for service requests.
type RequestRepository interface {
	Create(ctx context.Context, r domain.ServiceRequest) (domain.ServiceRequest, error)
	Get(ctx context.Context, id int64) (domain.ServiceRequest, error)
	Update(ctx context.Context, r domain.ServiceRequest) error
	ListForClient(ctx context.Context, clientID string) ([]domain.ServiceRequest, error)
	ListForProfessional(ctx context.Context, professionalID string) ([]domain.ServiceRequest, error)
}

// RatingWriter upserts the per-request rating.
type RatingWriter interface {
	GetByRequest(ctx context.Context, requestID int64) (domain.Rating, error)
	Upsert(ctx context.Context, r domain.Rating) error
}

// Notifier delivers out-of-band notifications. Failures are logged, never
// surfaced to the caller.
type Notifier interface {
	Send(to, subject, body string) error
}

// NewRequestInput is the validated form for creating a request.
type NewRequestInput struct {
	ProfessionalID string  `json:"professionalId"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Category       *string `json:"category,omitempty"`
	Location       *string `json:"location,omitempty"`
	AgreedPrice    float64 `json:"agreedPrice"`
}

// EditRequestInput updates a pending request's negotiable fields.
type EditRequestInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    *string `json:"category,omitempty"`
	Location    *string `json:"location,omitempty"`
	AgreedPrice float64 `json:"agreedPrice"`
}

type RequestUsecase struct {
	requests  RequestRepository
	ratings   RatingWriter
	users     UserDirectory
	notifier  Notifier
	directory DirectoryInvalidator
}

func NewRequestUsecase(requests RequestRepository, ratings RatingWriter, users UserDirectory, notifier Notifier, directory DirectoryInvalidator) *RequestUsecase {
	return &RequestUsecase{requests: requests, ratings: ratings, users: users, notifier: notifier, directory: directory}
}

// Request files a new pending work order against a professional.
func (uc *RequestUsecase) Request(ctx context.Context, clientID string, in NewRequestInput) (domain.ServiceRequest, error) {
	if in.Title == "" {
		return domain.ServiceRequest{}, domain.ValidationError{Field: "title", Message: "is required"}
	}
	if in.Description == "" {
		return domain.ServiceRequest{}, domain.ValidationError{Field: "description", Message: "is required"}
	}
	if in.AgreedPrice < 0 {
		return domain.ServiceRequest{}, domain.ValidationError{Field: "agreedPrice", Message: "must not be negative"}
	}

	professional, err := uc.users.Get(ctx, in.ProfessionalID)
	if err != nil {
		return domain.ServiceRequest{}, err
	}
	if professional.Category == nil {
		return domain.ServiceRequest{}, domain.NotFoundError{Resource: "professional"}
	}

	req, err := uc.requests.Create(ctx, domain.ServiceRequest{
		ClientID:       clientID,
		ProfessionalID: in.ProfessionalID,
		Title:          in.Title,
		Description:    in.Description,
		Category:       in.Category,
		Location:       in.Location,
		AgreedPrice:    in.AgreedPrice,
		State:          domain.StatePending,
		RequestedAt:    time.Now().UTC(),
	})
	if err != nil {
		return domain.ServiceRequest{}, err
	}

	uc.notify(professional.Email, "New service request",
		fmt.Sprintf("You received a new service request: %s", req.Title))
	return req, nil
}

// Edit rewrites a request's negotiable fields. Only the client may edit,
// and only while the request is still pending.
func (uc *RequestUsecase) Edit(ctx context.Context, clientID string, id int64, in EditRequestInput) (domain.ServiceRequest, error) {
	req, err := uc.requests.Get(ctx, id)
	if err != nil {
		return domain.ServiceRequest{}, err
	}
	if req.ClientID != clientID || req.State != domain.StatePending {
		return domain.ServiceRequest{}, domain.PermissionError{Action: "edit request"}
	}
	if in.Title == "" {
		return domain.ServiceRequest{}, domain.ValidationError{Field: "title", Message: "is required"}
	}
	if in.Description == "" {
		return domain.ServiceRequest{}, domain.ValidationError{Field: "description", Message: "is required"}
	}

	req.Title = in.Title
	req.Description = in.Description
	req.Category = in.Category
	req.Location = in.Location
	req.AgreedPrice = in.AgreedPrice
	if err := uc.requests.Update(ctx, req); err != nil {
		return domain.ServiceRequest{}, err
	}
	return req, nil
}

// Accept moves a pending request to accepted.
func (uc *RequestUsecase) Accept(ctx context.Context, professionalID string, id int64) (domain.ServiceRequest, error) {
	return uc.professionalTransition(ctx, professionalID, id, func(req *domain.ServiceRequest) error {
		if req.State != domain.StatePending {
			return domain.ValidationError{Field: "state", Message: "only pending requests can be accepted"}
		}
		now := time.Now().UTC()
		req.State = domain.StateAccepted
		req.AcceptedAt = &now
		return nil
	})
}

// Decline moves a pending request to declined, a terminal state.
func (uc *RequestUsecase) Decline(ctx context.Context, professionalID string, id int64) (domain.ServiceRequest, error) {
	return uc.professionalTransition(ctx, professionalID, id, func(req *domain.ServiceRequest) error {
		if req.State != domain.StatePending {
			return domain.ValidationError{Field: "state", Message: "only pending requests can be declined"}
		}
		req.State = domain.StateDeclined
		return nil
	})
}

// Start moves an accepted request to in-progress.
func (uc *RequestUsecase) Start(ctx context.Context, professionalID string, id int64) (domain.ServiceRequest, error) {
	return uc.professionalTransition(ctx, professionalID, id, func(req *domain.ServiceRequest) error {
		if req.State != domain.StateAccepted {
			return domain.ValidationError{Field: "state", Message: "only accepted requests can be started"}
		}
		req.State = domain.StateInProgress
		return nil
	})
}

// Complete marks the request done. Only the professional's ownership is
// checked; the prior state is not, matching the original behavior.
func (uc *RequestUsecase) Complete(ctx context.Context, professionalID string, id int64) (domain.ServiceRequest, error) {
	return uc.professionalTransition(ctx, professionalID, id, func(req *domain.ServiceRequest) error {
		now := time.Now().UTC()
		req.State = domain.StateCompleted
		req.CompletedAt = &now
		return nil
	})
}

func (uc *RequestUsecase) professionalTransition(ctx context.Context, professionalID string, id int64, apply func(*domain.ServiceRequest) error) (domain.ServiceRequest, error) {
	req, err := uc.requests.Get(ctx, id)
	if err != nil {
		return domain.ServiceRequest{}, err
	}
	if req.ProfessionalID != professionalID {
		return domain.ServiceRequest{}, domain.PermissionError{Action: "update request"}
	}
	if err := apply(&req); err != nil {
		return domain.ServiceRequest{}, err
	}
	if err := uc.requests.Update(ctx, req); err != nil {
		return domain.ServiceRequest{}, err
	}
	return req, nil
}

// Cancel cancels the request on behalf of either party. Completed and
// declined requests cannot be cancelled.
func (uc *RequestUsecase) Cancel(ctx context.Context, userID string, id int64, reason string) (domain.ServiceRequest, error) {
	req, err := uc.requests.Get(ctx, id)
	if err != nil {
		return domain.ServiceRequest{}, err
	}
	if req.ClientID != userID && req.ProfessionalID != userID {
		return domain.ServiceRequest{}, domain.PermissionError{Action: "cancel request"}
	}
	if !req.State.Cancellable() {
		return domain.ServiceRequest{}, domain.ValidationError{Field: "state", Message: "request cannot be cancelled in its current state"}
	}

	req.State = domain.StateCancelled
	if reason != "" {
		by := "professional"
		if req.ClientID == userID {
			by = "client"
		}
		note := fmt.Sprintf("cancelled by %s: %s", by, reason)
		req.ProfessionalReply = &note
	}
	if err := uc.requests.Update(ctx, req); err != nil {
		return domain.ServiceRequest{}, err
	}
	return req, nil
}

// Get loads one request; only its parties and admins may see it.
func (uc *RequestUsecase) Get(ctx context.Context, userID string, isAdmin bool, id int64) (domain.ServiceRequest, error) {
	req, err := uc.requests.Get(ctx, id)
	if err != nil {
		return domain.ServiceRequest{}, err
	}
	if req.ClientID != userID && req.ProfessionalID != userID && !isAdmin {
		return domain.ServiceRequest{}, domain.PermissionError{Action: "view request"}
	}
	return req, nil
}

// List returns the user's requests for the given dashboard mode, newest
// first.
func (uc *RequestUsecase) List(ctx context.Context, userID string, mode domain.DashboardMode) ([]domain.ServiceRequest, error) {
	if mode == domain.ModeProfessional {
		return uc.requests.ListForProfessional(ctx, userID)
	}
	return uc.requests.ListForClient(ctx, userID)
}

// Rate records the client's score for a completed request. Rating a
// request twice overwrites the first score.
func (uc *RequestUsecase) Rate(ctx context.Context, clientID string, requestID int64, score int, comment *string) error {
	if score < 1 || score > 5 {
		return domain.ValidationError{Field: "score", Message: "must be between 1 and 5"}
	}

	req, err := uc.requests.Get(ctx, requestID)
	if err != nil {
		return err
	}
	if req.ClientID != clientID {
		return domain.PermissionError{Action: "rate request"}
	}
	if req.State != domain.StateCompleted {
		return domain.ValidationError{Field: "state", Message: "only completed requests can be rated"}
	}

	rating := domain.Rating{
		RequestID:      requestID,
		RaterID:        clientID,
		ProfessionalID: req.ProfessionalID,
		Score:          score,
		Comment:        comment,
		RatedAt:        time.Now().UTC(),
	}
	if existing, err := uc.ratings.GetByRequest(ctx, requestID); err == nil {
		rating.ID = existing.ID
	}
	if err := uc.ratings.Upsert(ctx, rating); err != nil {
		return err
	}
	if uc.directory != nil {
		uc.directory.Invalidate()
	}
	return nil
}

func (uc *RequestUsecase) notify(to, subject, body string) {
	if uc.notifier == nil || to == "" {
		return
	}
	if err := uc.notifier.Send(to, subject, body); err != nil {
		slog.Warn("notification delivery failed",
			slog.String("to", to),
			slog.String("error", err.Error()),
		)
	}
}
