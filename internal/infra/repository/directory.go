package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edsg/edsg/internal/domain"
	"github.com/edsg/edsg/internal/infra/database/models"
	"github.com/edsg/edsg/internal/usecase"
)

// DirectoryRepository serves the public directory: the searchable
// professionals plus the aggregates the listing pages need.
type DirectoryRepository struct {
	db *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

func (r *DirectoryRepository) ListActiveProfessionals(ctx context.Context) ([]domain.User, error) {
	var records []models.User
	err := r.db.WithContext(ctx).
		Where("category IS NOT NULL AND is_active = ?", true).
		Order("registered_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return usersToDomain(records), nil
}

// ScoresByProfessional loads every score grouped in memory; the whole
// directory is ranked per request anyway.
func (r *DirectoryRepository) ScoresByProfessional(ctx context.Context) (map[string][]int, error) {
	var records []models.Rating
	err := r.db.WithContext(ctx).
		Select("professional_id", "score").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	scores := map[string][]int{}
	for _, m := range records {
		scores[m.ProfessionalID] = append(scores[m.ProfessionalID], m.Score)
	}
	return scores, nil
}

func (r *DirectoryRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Distinct("category").
		Where("category IS NOT NULL AND is_active = ?", true).
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *DirectoryRepository) Get(ctx context.Context, id string) (domain.User, error) {
	var record models.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&record).Error
	if err != nil {
		return domain.User{}, storeErr(err, "user")
	}
	return userToDomain(record), nil
}

func (r *DirectoryRepository) CountCompletedRequests(ctx context.Context, professionalID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ServiceRequest{}).
		Where("professional_id = ? AND state = ?", professionalID, int(domain.StateCompleted)).
		Count(&count).Error
	return count, err
}

func (r *DirectoryRepository) CountRequests(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ServiceRequest{}).
		Count(&count).Error
	return count, err
}

func (r *DirectoryRepository) RecentCompletedRequests(ctx context.Context, limit int) ([]domain.ServiceRequest, error) {
	var records []models.ServiceRequest
	err := r.db.WithContext(ctx).
		Where("state = ?", int(domain.StateCompleted)).
		Order("completed_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return requestsToDomain(records), nil
}

// DashboardRepository gathers the signed-in landing page slices.
type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) RequestsByState(ctx context.Context, userID string, mode domain.DashboardMode, states []domain.RequestState, limit int) ([]domain.ServiceRequest, error) {
	column := "client_id"
	if mode == domain.ModeProfessional {
		column = "professional_id"
	}

	stateInts := make([]int, 0, len(states))
	for _, s := range states {
		stateInts = append(stateInts, int(s))
	}

	var records []models.ServiceRequest
	err := r.db.WithContext(ctx).
		Where(column+" = ? AND state IN ?", userID, stateInts).
		Order("requested_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return requestsToDomain(records), nil
}

func (r *DashboardRepository) UnreadMessages(ctx context.Context, userID string, limit int) ([]domain.Message, error) {
	var records []models.Message
	err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND is_read = false AND deleted_for_recipient = false", userID).
		Order("sent_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return messagesToDomain(records), nil
}

func (r *DashboardRepository) FavoriteProfessionals(ctx context.Context, clientID string, limit int) ([]domain.User, error) {
	var records []models.User
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN favorites ON favorites.professional_id = users.id").
		Where("favorites.client_id = ?", clientID).
		Order("favorites.added_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return usersToDomain(records), nil
}

func (r *DashboardRepository) RecentRatings(ctx context.Context, professionalID string, limit int) ([]domain.Rating, error) {
	var records []models.Rating
	err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("rated_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	ratings := make([]domain.Rating, 0, len(records))
	for _, m := range records {
		ratings = append(ratings, ratingToDomain(m))
	}
	return ratings, nil
}

func (r *DashboardRepository) ProfessionalStats(ctx context.Context, professionalID string) (usecase.ProfessionalStats, error) {
	var stats usecase.ProfessionalStats

	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.ServiceRequest{}).
			Where("professional_id = ?", professionalID)
	}

	if err := base().Count(&stats.TotalRequests).Error; err != nil {
		return stats, err
	}
	if err := base().Where("state = ?", int(domain.StateCompleted)).
		Count(&stats.CompletedRequests).Error; err != nil {
		return stats, err
	}
	if err := base().Where("state = ?", int(domain.StatePending)).
		Count(&stats.PendingRequests).Error; err != nil {
		return stats, err
	}

	var revenue *float64
	err := base().Where("state = ?", int(domain.StateCompleted)).
		Select("SUM(agreed_price)").
		Scan(&revenue).Error
	if err != nil {
		return stats, err
	}
	if revenue != nil {
		stats.TotalRevenue = *revenue
	}

	var mean *float64
	err = r.db.WithContext(ctx).Model(&models.Rating{}).
		Where("professional_id = ?", professionalID).
		Select("AVG(score)").
		Scan(&mean).Error
	if err != nil {
		return stats, err
	}
	if mean != nil {
		stats.MeanRating = *mean
	}

	return stats, nil
}
