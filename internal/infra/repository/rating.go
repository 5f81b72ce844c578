package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edsg/edsg/internal/domain"
	"github.com/edsg/edsg/internal/infra/database/models"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func ratingToDomain(m models.Rating) domain.Rating {
	return domain.Rating{
		ID:             m.ID,
		RequestID:      m.RequestID,
		RaterID:        m.RaterID,
		ProfessionalID: m.ProfessionalID,
		Score:          m.Score,
		Comment:        m.Comment,
		RatedAt:        m.RatedAt,
		Reply:          m.Reply,
		RepliedAt:      m.RepliedAt,
	}
}

func (r *RatingRepository) Get(ctx context.Context, id int64) (domain.Rating, error) {
	var record models.Rating
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&record).Error
	if err != nil {
		return domain.Rating{}, storeErr(err, "rating")
	}
	return ratingToDomain(record), nil
}

func (r *RatingRepository) GetByRequest(ctx context.Context, requestID int64) (domain.Rating, error) {
	var record models.Rating
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Take(&record).Error
	if err != nil {
		return domain.Rating{}, storeErr(err, "rating")
	}
	return ratingToDomain(record), nil
}

func (r *RatingRepository) ListForProfessional(ctx context.Context, professionalID string) ([]domain.Rating, error) {
	var records []models.Rating
	err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("rated_at DESC").
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

// Upsert writes the rating, overwriting any prior score for the request.
// The one-rating-per-request invariant lives in the unique index.
func (r *RatingRepository) Upsert(ctx context.Context, rating domain.Rating) error {
	record := models.Rating{
		ID:             rating.ID,
		RequestID:      rating.RequestID,
		RaterID:        rating.RaterID,
		ProfessionalID: rating.ProfessionalID,
		Score:          rating.Score,
		Comment:        rating.Comment,
		RatedAt:        rating.RatedAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "request_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "comment", "rated_at"}),
	}).Create(&record).Error
}

func (r *RatingRepository) SetReply(ctx context.Context, id int64, reply string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Rating{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"reply":      reply,
			"replied_at": at,
		})
	if result.Error != nil {
		return storeErr(result.Error, "rating")
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "rating"}
	}
	return nil
}
