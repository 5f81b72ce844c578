package usecase

import (
	"context"
	"time"

	"github.com/edsg/edsg/internal/domain"
)

// ReportRepository defines persistence for user complaints.
type ReportRepository interface {
	Create(ctx context.Context, r domain.Report) (domain.Report, error)
	Get(ctx context.Context, id int64) (domain.Report, error)
	Update(ctx context.Context, r domain.Report) error
	List(ctx context.Context, state *domain.ReportState) ([]domain.Report, error)
}

// AdminRepository covers the moderation queries that cut across entities.
type AdminRepository interface {
	ListUsers(ctx context.Context, search string, active *bool) ([]domain.User, error)
	SystemStats(ctx context.Context) (SystemStats, error)
	SetOfferingActive(ctx context.Context, id int64, active bool) error
	SetPortfolioItemActive(ctx context.Context, id int64, active bool) error
}

// SystemStats is the admin overview.
type SystemStats struct {
	TotalUsers         int64 `json:"totalUsers"`
	ActiveUsers        int64 `json:"activeUsers"`
	TotalProfessionals int64 `json:"totalProfessionals"`
	PremiumUsers       int64 `json:"premiumUsers"`
	TotalRequests      int64 `json:"totalRequests"`
	CompletedRequests  int64 `json:"completedRequests"`
	TotalMessages      int64 `json:"totalMessages"`
	TotalRatings       int64 `json:"totalRatings"`
	OpenReports        int64 `json:"openReports"`
}

type AdminUsecase struct {
	users     UserRepository
	reports   ReportRepository
	admin     AdminRepository
	directory DirectoryInvalidator
}

func NewAdminUsecase(users UserRepository, reports ReportRepository, admin AdminRepository, directory DirectoryInvalidator) *AdminUsecase {
	return &AdminUsecase{users: users, reports: reports, admin: admin, directory: directory}
}

// FileReport records a complaint from any signed-in user.
func (uc *AdminUsecase) FileReport(ctx context.Context, reporterID string, reportedID string, kind domain.ReportKind, description string, requestID *int64) (domain.Report, error) {
	if description == "" {
		return domain.Report{}, domain.ValidationError{Field: "description", Message: "is required"}
	}
	if _, err := uc.users.Get(ctx, reportedID); err != nil {
		return domain.Report{}, err
	}

	return uc.reports.Create(ctx, domain.Report{
		ReporterID:  reporterID,
		ReportedID:  reportedID,
		Kind:        kind,
		Description: description,
		State:       domain.ReportPending,
		FiledAt:     time.Now().UTC(),
		RequestID:   requestID,
	})
}

// ListReports returns complaints, optionally filtered by state.
func (uc *AdminUsecase) ListReports(ctx context.Context, state *domain.ReportState) ([]domain.Report, error) {
	return uc.reports.List(ctx, state)
}

// GetReport loads one complaint.
func (uc *AdminUsecase) GetReport(ctx context.Context, id int64) (domain.Report, error) {
	return uc.reports.Get(ctx, id)
}

// UpdateReport advances the moderation workflow and records admin notes.
// Resolved and rejected set the resolution timestamp.
func (uc *AdminUsecase) UpdateReport(ctx context.Context, id int64, state domain.ReportState, notes *string) (domain.Report, error) {
	report, err := uc.reports.Get(ctx, id)
	if err != nil {
		return domain.Report{}, err
	}

	report.State = state
	report.AdminNotes = notes
	if state == domain.ReportResolved || state == domain.ReportRejected {
		now := time.Now().UTC()
		report.ResolvedAt = &now
	}
	if err := uc.reports.Update(ctx, report); err != nil {
		return domain.Report{}, err
	}
	return report, nil
}

// ListUsers searches accounts for the moderation screen.
func (uc *AdminUsecase) ListUsers(ctx context.Context, search string, active *bool) ([]domain.User, error) {
	return uc.admin.ListUsers(ctx, search, active)
}

// ToggleUserActive flips the account's active flag.
func (uc *AdminUsecase) ToggleUserActive(ctx context.Context, id string) (domain.User, error) {
	user, err := uc.users.Get(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	user.IsActive = !user.IsActive
	if err := uc.users.Update(ctx, user); err != nil {
		return domain.User{}, err
	}
	if uc.directory != nil {
		uc.directory.Invalidate()
	}
	return user, nil
}

// ToggleAdmin grants or revokes the admin role.
func (uc *AdminUsecase) ToggleAdmin(ctx context.Context, id string) (domain.User, error) {
	user, err := uc.users.Get(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	user.IsAdmin = !user.IsAdmin
	if err := uc.users.Update(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// SetOfferingActive moderates a catalog entry.
func (uc *AdminUsecase) SetOfferingActive(ctx context.Context, id int64, active bool) error {
	return uc.admin.SetOfferingActive(ctx, id, active)
}

// SetPortfolioItemActive moderates a single work sample.
func (uc *AdminUsecase) SetPortfolioItemActive(ctx context.Context, id int64, active bool) error {
	return uc.admin.SetPortfolioItemActive(ctx, id, active)
}

// Stats is the admin system overview.
func (uc *AdminUsecase) Stats(ctx context.Context) (SystemStats, error) {
	return uc.admin.SystemStats(ctx)
}
