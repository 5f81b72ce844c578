package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edsg/edsg/internal/domain"
	"github.com/edsg/edsg/internal/infra/database/models"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Add(ctx context.Context, f domain.Favorite) error {
	record := models.Favorite{
		ClientID:       f.ClientID,
		ProfessionalID: f.ProfessionalID,
		AddedAt:        f.AddedAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		DoNothing: true,
	}).Create(&record).Error
}

func (r *FavoriteRepository) Remove(ctx context.Context, clientID, professionalID string) error {
	return r.db.WithContext(ctx).
		Delete(&models.Favorite{}, "client_id = ? AND professional_id = ?", clientID, professionalID).Error
}

func (r *FavoriteRepository) Exists(ctx context.Context, clientID, professionalID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("client_id = ? AND professional_id = ?", clientID, professionalID).
		Count(&count).Error
	return count > 0, err
}

func (r *FavoriteRepository) ListProfessionals(ctx context.Context, clientID string) ([]domain.User, error) {
	var records []models.User
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN favorites ON favorites.professional_id = users.id").
		Where("favorites.client_id = ?", clientID).
		Order("favorites.added_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return usersToDomain(records), nil
}
