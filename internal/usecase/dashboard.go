package usecase

import (
	"context"

	"github.com/edsg/edsg/internal/domain"
)

// DashboardRepository loads the slices the dashboard renders. The limits
// match the original page: five requests per section, ten messages, six
// favorites.
type DashboardRepository interface {
	RequestsByState(ctx context.Context, userID string, mode domain.DashboardMode, states []domain.RequestState, limit int) ([]domain.ServiceRequest, error)
	UnreadMessages(ctx context.Context, userID string, limit int) ([]domain.Message, error)
	FavoriteProfessionals(ctx context.Context, clientID string, limit int) ([]domain.User, error)
	RecentRatings(ctx context.Context, professionalID string, limit int) ([]domain.Rating, error)
	ProfessionalStats(ctx context.Context, professionalID string) (ProfessionalStats, error)
}

// ProfessionalStats summarizes a professional's track record.
type ProfessionalStats struct {
	TotalRequests     int64   `json:"totalRequests"`
	CompletedRequests int64   `json:"completedRequests"`
	PendingRequests   int64   `json:"pendingRequests"`
	MeanRating        float64 `json:"meanRating"`
	TotalRevenue      float64 `json:"totalRevenue"`
}

// DashboardView is the role-dependent landing payload after sign-in.
type DashboardView struct {
	Mode              domain.DashboardMode    `json:"-"`
	ModeName          string                  `json:"mode"`
	PendingRequests   []domain.ServiceRequest `json:"pendingRequests"`
	ActiveRequests    []domain.ServiceRequest `json:"activeRequests"`
	CompletedRequests []domain.ServiceRequest `json:"completedRequests"`
	UnreadMessages    []domain.Message        `json:"unreadMessages"`
	Favorites         []domain.User           `json:"favorites,omitempty"`
	RecentRatings     []domain.Rating         `json:"recentRatings,omitempty"`
	Stats             *ProfessionalStats      `json:"stats,omitempty"`
}

type DashboardUsecase struct {
	repo DashboardRepository
}

func NewDashboardUsecase(repo DashboardRepository) *DashboardUsecase {
	return &DashboardUsecase{repo: repo}
}

// Load assembles the dashboard for the requested mode.
func (uc *DashboardUsecase) Load(ctx context.Context, userID string, mode domain.DashboardMode) (DashboardView, error) {
	view := DashboardView{Mode: mode, ModeName: mode.String()}

	pending, err := uc.repo.RequestsByState(ctx, userID, mode, []domain.RequestState{domain.StatePending}, 5)
	if err != nil {
		return DashboardView{}, err
	}
	active, err := uc.repo.RequestsByState(ctx, userID, mode,
		[]domain.RequestState{domain.StateAccepted, domain.StateInProgress}, 5)
	if err != nil {
		return DashboardView{}, err
	}
	completed, err := uc.repo.RequestsByState(ctx, userID, mode, []domain.RequestState{domain.StateCompleted}, 5)
	if err != nil {
		return DashboardView{}, err
	}
	unread, err := uc.repo.UnreadMessages(ctx, userID, 10)
	if err != nil {
		return DashboardView{}, err
	}

	view.PendingRequests = pending
	view.ActiveRequests = active
	view.CompletedRequests = completed
	view.UnreadMessages = unread

	if mode == domain.ModeProfessional {
		stats, err := uc.repo.ProfessionalStats(ctx, userID)
		if err != nil {
			return DashboardView{}, err
		}
		ratings, err := uc.repo.RecentRatings(ctx, userID, 5)
		if err != nil {
			return DashboardView{}, err
		}
		view.Stats = &stats
		view.RecentRatings = ratings
	} else {
		favorites, err := uc.repo.FavoriteProfessionals(ctx, userID, 6)
		if err != nil {
			return DashboardView{}, err
		}
		view.Favorites = favorites
	}

	return view, nil
}
