package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/edsg/edsg/internal/domain"
)

type mockRequestRepository struct {
	requests map[int64]domain.ServiceRequest
	nextID   int64
}

func newMockRequestRepository() *mockRequestRepository {
	return &mockRequestRepository{requests: map[int64]domain.ServiceRequest{}, nextID: 1}
}

func (m *mockRequestRepository) Create(ctx context.Context, r domain.ServiceRequest) (domain.ServiceRequest, error) {
	r.ID = m.nextID
	m.nextID++
	m.requests[r.ID] = r
	return r, nil
}

func (m *mockRequestRepository) Get(ctx context.Context, id int64) (domain.ServiceRequest, error) {
	r, ok := m.requests[id]
	if !ok {
		return domain.ServiceRequest{}, domain.NotFoundError{Resource: "request"}
	}
	return r, nil
}

func (m *mockRequestRepository) Update(ctx context.Context, r domain.ServiceRequest) error {
	if _, ok := m.requests[r.ID]; !ok {
		return domain.NotFoundError{Resource: "request"}
	}
	m.requests[r.ID] = r
	return nil
}

func (m *mockRequestRepository) ListForClient(ctx context.Context, clientID string) ([]domain.ServiceRequest, error) {
	var out []domain.ServiceRequest
	for _, r := range m.requests {
		if r.ClientID == clientID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRequestRepository) ListForProfessional(ctx context.Context, professionalID string) ([]domain.ServiceRequest, error) {
	var out []domain.ServiceRequest
	for _, r := range m.requests {
		if r.ProfessionalID == professionalID {
			out = append(out, r)
		}
	}
	return out, nil
}

type mockRatingWriter struct {
	byRequest map[int64]domain.Rating
	nextID    int64
}

func newMockRatingWriter() *mockRatingWriter {
	return &mockRatingWriter{byRequest: map[int64]domain.Rating{}, nextID: 1}
}

func (m *mockRatingWriter) GetByRequest(ctx context.Context, requestID int64) (domain.Rating, error) {
	r, ok := m.byRequest[requestID]
	if !ok {
		return domain.Rating{}, domain.NotFoundError{Resource: "rating"}
	}
	return r, nil
}

func (m *mockRatingWriter) Upsert(ctx context.Context, r domain.Rating) error {
	if r.ID == 0 {
		r.ID = m.nextID
		m.nextID++
	}
	m.byRequest[r.RequestID] = r
	return nil
}

type mockDirectoryInvalidator struct {
	calls int
}

func (m *mockDirectoryInvalidator) Invalidate() { m.calls++ }

type mockNotifier struct {
	sent []string
	err  error
}

func (m *mockNotifier) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to+": "+subject)
	return nil
}

func requestFixture() (*RequestUsecase, *mockRequestRepository, *mockRatingWriter, *mockNotifier) {
	repo := newMockRequestRepository()
	ratings := newMockRatingWriter()
	category := "plumbing"
	users := &mockUserDirectory{users: map[string]domain.User{
		"client": {ID: "client", Name: "Client", Email: "client@example.com"},
		"pro":    {ID: "pro", Name: "Pro", Email: "pro@example.com", Category: &category, IsActive: true},
		"plain":  {ID: "plain", Name: "Plain", Email: "plain@example.com"},
	}}
	notifier := &mockNotifier{}
	return NewRequestUsecase(repo, ratings, users, notifier, nil), repo, ratings, notifier
}

func pending(t *testing.T, uc *RequestUsecase) domain.ServiceRequest {
	t.Helper()
	req, err := uc.Request(context.Background(), "client", NewRequestInput{
		ProfessionalID: "pro",
		Title:          "Fix the sink",
		Description:    "It leaks",
		AgreedPrice:    40,
	})
	if err != nil {
		t.Fatal(err)
	}
	return req
}

func TestRequestCreate(t *testing.T) {
	ctx := context.Background()
	uc, _, _, notifier := requestFixture()

	req := pending(t, uc)
	if req.State != domain.StatePending {
		t.Errorf("expected pending, got %s", req.State)
	}
	if len(notifier.sent) != 1 || !strings.HasPrefix(notifier.sent[0], "pro@example.com") {
		t.Errorf("expected one notification to the professional, got %v", notifier.sent)
	}

	// Targets without a category are not professionals.
	_, err := uc.Request(ctx, "client", NewRequestInput{ProfessionalID: "plain", Title: "t", Description: "d"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}

	_, err = uc.Request(ctx, "client", NewRequestInput{ProfessionalID: "pro", Title: "", Description: "d"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("missing title: expected validation error, got %v", err)
	}
	_, err = uc.Request(ctx, "client", NewRequestInput{ProfessionalID: "pro", Title: "t", Description: "d", AgreedPrice: -1})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("negative price: expected validation error, got %v", err)
	}
}

func TestRequestCreateSurvivesNotifierFailure(t *testing.T) {
	uc, _, _, notifier := requestFixture()
	notifier.err = errors.New("smtp down")

	if _, err := uc.Request(context.Background(), "client", NewRequestInput{
		ProfessionalID: "pro", Title: "t", Description: "d",
	}); err != nil {
		t.Fatalf("a failed notification must not fail the request: %v", err)
	}
}

func TestRequestEditOnlyPendingByClient(t *testing.T) {
	ctx := context.Background()
	uc, _, _, _ := requestFixture()
	req := pending(t, uc)

	edited, err := uc.Edit(ctx, "client", req.ID, EditRequestInput{Title: "Fix both sinks", Description: "d", AgreedPrice: 60})
	if err != nil {
		t.Fatal(err)
	}
	if edited.Title != "Fix both sinks" || edited.AgreedPrice != 60 {
		t.Errorf("edit not applied: %+v", edited)
	}

	if _, err := uc.Edit(ctx, "pro", req.ID, EditRequestInput{Title: "t", Description: "d"}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("professional edit: expected forbidden, got %v", err)
	}

	if _, err := uc.Accept(ctx, "pro", req.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Edit(ctx, "client", req.ID, EditRequestInput{Title: "t", Description: "d"}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("post-accept edit: expected forbidden, got %v", err)
	}
}

func TestRequestLifecycle(t *testing.T) {
	ctx := context.Background()
	uc, _, _, _ := requestFixture()
	req := pending(t, uc)

	// Only the assigned professional may transition.
	if _, err := uc.Accept(ctx, "client", req.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected forbidden, got %v", err)
	}

	accepted, err := uc.Accept(ctx, "pro", req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if accepted.State != domain.StateAccepted || accepted.AcceptedAt == nil {
		t.Errorf("bad accept result: %+v", accepted)
	}

	// Accepting twice is rejected.
	if _, err := uc.Accept(ctx, "pro", req.ID); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("double accept: expected validation error, got %v", err)
	}
	if _, err := uc.Decline(ctx, "pro", req.ID); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("decline after accept: expected validation error, got %v", err)
	}

	started, err := uc.Start(ctx, "pro", req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if started.State != domain.StateInProgress {
		t.Errorf("expected in progress, got %s", started.State)
	}

	done, err := uc.Complete(ctx, "pro", req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if done.State != domain.StateCompleted || done.CompletedAt == nil {
		t.Errorf("bad complete result: %+v", done)
	}
}

// Complete checks ownership only; a pending request can be closed directly.
func TestRequestCompleteSkipsStateCheck(t *testing.T) {
	ctx := context.Background()
	uc, _, _, _ := requestFixture()
	req := pending(t, uc)

	done, err := uc.Complete(ctx, "pro", req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if done.State != domain.StateCompleted {
		t.Errorf("expected completed, got %s", done.State)
	}
}

func TestRequestDecline(t *testing.T) {
	ctx := context.Background()
	uc, _, _, _ := requestFixture()
	req := pending(t, uc)

	declined, err := uc.Decline(ctx, "pro", req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if declined.State != domain.StateDeclined {
		t.Errorf("expected declined, got %s", declined.State)
	}

	// Declined is terminal: no cancel, no start.
	if _, err := uc.Cancel(ctx, "client", req.ID, ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("cancel after decline: expected validation error, got %v", err)
	}
	if _, err := uc.Start(ctx, "pro", req.ID); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("start after decline: expected validation error, got %v", err)
	}
}

func TestRequestCancel(t *testing.T) {
	ctx := context.Background()
	uc, _, _, _ := requestFixture()

	req := pending(t, uc)
	if _, err := uc.Cancel(ctx, "stranger", req.ID, ""); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected forbidden, got %v", err)
	}

	cancelled, err := uc.Cancel(ctx, "client", req.ID, "found someone else")
	if err != nil {
		t.Fatal(err)
	}
	if cancelled.State != domain.StateCancelled {
		t.Errorf("expected cancelled, got %s", cancelled.State)
	}
	if cancelled.ProfessionalReply == nil || *cancelled.ProfessionalReply != "cancelled by client: found someone else" {
		t.Errorf("bad cancel note: %v", cancelled.ProfessionalReply)
	}

	// Either party may cancel; in-progress work included.
	req2 := pending(t, uc)
	if _, err := uc.Accept(ctx, "pro", req2.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Start(ctx, "pro", req2.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Cancel(ctx, "pro", req2.ID, "parts unavailable"); err != nil {
		t.Fatal(err)
	}

	// Completed work cannot be cancelled.
	req3 := pending(t, uc)
	if _, err := uc.Complete(ctx, "pro", req3.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Cancel(ctx, "client", req3.ID, ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("cancel after complete: expected validation error, got %v", err)
	}
}

func TestRequestGetVisibility(t *testing.T) {
	ctx := context.Background()
	uc, _, _, _ := requestFixture()
	req := pending(t, uc)

	for _, id := range []string{"client", "pro"} {
		if _, err := uc.Get(ctx, id, false, req.ID); err != nil {
			t.Errorf("%s should see the request: %v", id, err)
		}
	}
	if _, err := uc.Get(ctx, "stranger", false, req.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected forbidden, got %v", err)
	}
	if _, err := uc.Get(ctx, "stranger", true, req.ID); err != nil {
		t.Errorf("admins see every request: %v", err)
	}
}

func TestRequestListByMode(t *testing.T) {
	ctx := context.Background()
	uc, _, _, _ := requestFixture()
	pending(t, uc)

	asClient, err := uc.List(ctx, "client", domain.ModeClient)
	if err != nil {
		t.Fatal(err)
	}
	if len(asClient) != 1 {
		t.Errorf("expected 1 client request, got %d", len(asClient))
	}

	asPro, err := uc.List(ctx, "pro", domain.ModeProfessional)
	if err != nil {
		t.Fatal(err)
	}
	if len(asPro) != 1 {
		t.Errorf("expected 1 professional request, got %d", len(asPro))
	}

	none, err := uc.List(ctx, "pro", domain.ModeClient)
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("the professional filed no requests as a client, got %d", len(none))
	}
}

func TestRequestRate(t *testing.T) {
	ctx := context.Background()
	uc, _, ratings, _ := requestFixture()
	req := pending(t, uc)

	if err := uc.Rate(ctx, "client", req.ID, 6, nil); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("score 6: expected validation error, got %v", err)
	}
	if err := uc.Rate(ctx, "client", req.ID, 5, nil); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("rating a pending request: expected validation error, got %v", err)
	}

	if _, err := uc.Complete(ctx, "pro", req.ID); err != nil {
		t.Fatal(err)
	}
	if err := uc.Rate(ctx, "pro", req.ID, 5, nil); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("professional self-rating: expected forbidden, got %v", err)
	}

	comment := "great work"
	if err := uc.Rate(ctx, "client", req.ID, 4, &comment); err != nil {
		t.Fatal(err)
	}
	first := ratings.byRequest[req.ID]
	if first.Score != 4 || first.ProfessionalID != "pro" {
		t.Errorf("bad rating row: %+v", first)
	}

	// Rating again overwrites the first score in place.
	if err := uc.Rate(ctx, "client", req.ID, 2, nil); err != nil {
		t.Fatal(err)
	}
	second := ratings.byRequest[req.ID]
	if second.Score != 2 {
		t.Errorf("expected overwritten score 2, got %d", second.Score)
	}
	if second.ID != first.ID {
		t.Errorf("overwrite must keep the row id: %d vs %d", second.ID, first.ID)
	}
}

// A new rating changes the search ordering, so the directory cache must
// be dropped as soon as the score lands.
func TestRequestRateInvalidatesDirectory(t *testing.T) {
	ctx := context.Background()
	repo := newMockRequestRepository()
	category := "plumbing"
	users := &mockUserDirectory{users: map[string]domain.User{
		"client": {ID: "client", Email: "client@example.com"},
		"pro":    {ID: "pro", Email: "pro@example.com", Category: &category, IsActive: true},
	}}
	invalidator := &mockDirectoryInvalidator{}
	uc := NewRequestUsecase(repo, newMockRatingWriter(), users, nil, invalidator)

	req, err := uc.Request(ctx, "client", NewRequestInput{
		ProfessionalID: "pro", Title: "t", Description: "d",
	})
	if err != nil {
		t.Fatal(err)
	}

	// A rejected rating must leave the cache alone.
	if err := uc.Rate(ctx, "client", req.ID, 5, nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("rating a pending request: expected validation error, got %v", err)
	}
	if invalidator.calls != 0 {
		t.Errorf("cache dropped before any rating landed: %d calls", invalidator.calls)
	}

	if _, err := uc.Complete(ctx, "pro", req.ID); err != nil {
		t.Fatal(err)
	}
	if err := uc.Rate(ctx, "client", req.ID, 5, nil); err != nil {
		t.Fatal(err)
	}
	if invalidator.calls != 1 {
		t.Errorf("expected 1 invalidation after rating, got %d", invalidator.calls)
	}
}
