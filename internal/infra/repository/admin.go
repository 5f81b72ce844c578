package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edsg/edsg/internal/domain"
	"github.com/edsg/edsg/internal/infra/database/models"
	"github.com/edsg/edsg/internal/usecase"
)

// AdminRepository serves the moderation screens.
type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) ListUsers(ctx context.Context, search string, active *bool) ([]domain.User, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}
	if active != nil {
		query = query.Where("is_active = ?", *active)
	}

	var records []models.User
	err := query.Order("registered_at DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return usersToDomain(records), nil
}

func (r *AdminRepository) SetOfferingActive(ctx context.Context, id int64, active bool) error {
	result := r.db.WithContext(ctx).Model(&models.Offering{}).
		Where("id = ?", id).
		Update("active", active)
	if result.Error != nil {
		return storeErr(result.Error, "offering")
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "offering"}
	}
	return nil
}

func (r *AdminRepository) SetPortfolioItemActive(ctx context.Context, id int64, active bool) error {
	result := r.db.WithContext(ctx).Model(&models.PortfolioItem{}).
		Where("id = ?", id).
		Update("active", active)
	if result.Error != nil {
		return storeErr(result.Error, "portfolio item")
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "portfolio item"}
	}
	return nil
}

func (r *AdminRepository) SystemStats(ctx context.Context) (usecase.SystemStats, error) {
	var stats usecase.SystemStats

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalUsers, r.db.WithContext(ctx).Model(&models.User{})},
		{&stats.ActiveUsers, r.db.WithContext(ctx).Model(&models.User{}).Where("is_active = ?", true)},
		{&stats.TotalProfessionals, r.db.WithContext(ctx).Model(&models.User{}).Where("category IS NOT NULL")},
		{&stats.PremiumUsers, r.db.WithContext(ctx).Model(&models.User{}).Where("is_premium = ?", true)},
		{&stats.TotalRequests, r.db.WithContext(ctx).Model(&models.ServiceRequest{})},
		{&stats.CompletedRequests, r.db.WithContext(ctx).Model(&models.ServiceRequest{}).Where("state = ?", int(domain.StateCompleted))},
		{&stats.TotalMessages, r.db.WithContext(ctx).Model(&models.Message{})},
		{&stats.TotalRatings, r.db.WithContext(ctx).Model(&models.Rating{})},
		{&stats.OpenReports, r.db.WithContext(ctx).Model(&models.Report{}).Where("state IN ?", []int{int(domain.ReportPending), int(domain.ReportUnderReview)})},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return usecase.SystemStats{}, err
		}
	}
	return stats, nil
}
