package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edsg/edsg/internal/domain"
	"github.com/edsg/edsg/internal/infra/database/models"
)

type OfferingRepository struct {
	db *gorm.DB
}

func NewOfferingRepository(db *gorm.DB) *OfferingRepository {
	return &OfferingRepository{db: db}
}

func offeringToDomain(m models.Offering) domain.Offering {
	return domain.Offering{
		ID:             m.ID,
		ProfessionalID: m.ProfessionalID,
		Name:           m.Name,
		Description:    m.Description,
		Category:       m.Category,
		Price:          m.Price,
		EstimatedTime:  m.EstimatedTime,
		Active:         m.Active,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func portfolioItemToDomain(m models.PortfolioItem) domain.PortfolioItem {
	return domain.PortfolioItem{
		ID:             m.ID,
		OfferingID:     m.OfferingID,
		ProfessionalID: m.ProfessionalID,
		Title:          m.Title,
		Description:    m.Description,
		ImageURL:       m.ImageURL,
		ProjectLink:    m.ProjectLink,
		Kind:           domain.PortfolioKind(m.Kind),
		ProjectDate:    m.ProjectDate,
		Order:          m.Order,
		Active:         m.Active,
		Featured:       m.Featured,
		CreatedAt:      m.CreatedAt,
	}
}

func portfolioItemToModel(item domain.PortfolioItem) models.PortfolioItem {
	return models.PortfolioItem{
		OfferingID:     item.OfferingID,
		ProfessionalID: item.ProfessionalID,
		Title:          item.Title,
		Description:    item.Description,
		ImageURL:       item.ImageURL,
		ProjectLink:    item.ProjectLink,
		Kind:           string(item.Kind),
		ProjectDate:    item.ProjectDate,
		Order:          item.Order,
		Active:         item.Active,
		Featured:       item.Featured,
		CreatedAt:      item.CreatedAt,
	}
}

func (r *OfferingRepository) Create(ctx context.Context, o domain.Offering) (domain.Offering, error) {
	record := models.Offering{
		ProfessionalID: o.ProfessionalID,
		Name:           o.Name,
		Description:    o.Description,
		Category:       o.Category,
		Price:          o.Price,
		EstimatedTime:  o.EstimatedTime,
		Active:         o.Active,
		CreatedAt:      o.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.Offering{}, err
	}
	return offeringToDomain(record), nil
}

func (r *OfferingRepository) Get(ctx context.Context, id int64) (domain.Offering, error) {
	var record models.Offering
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&record).Error
	if err != nil {
		return domain.Offering{}, storeErr(err, "offering")
	}
	return offeringToDomain(record), nil
}

func (r *OfferingRepository) GetWithPortfolio(ctx context.Context, id int64) (domain.Offering, error) {
	offering, err := r.Get(ctx, id)
	if err != nil {
		return domain.Offering{}, err
	}

	var items []models.PortfolioItem
	err = r.db.WithContext(ctx).
		Where("offering_id = ? AND active = ?", id, true).
		Order("display_order ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return domain.Offering{}, err
	}
	for _, item := range items {
		offering.Portfolio = append(offering.Portfolio, portfolioItemToDomain(item))
	}
	return offering, nil
}

func (r *OfferingRepository) Update(ctx context.Context, o domain.Offering) error {
	result := r.db.WithContext(ctx).Model(&models.Offering{}).
		Where("id = ?", o.ID).
		Updates(map[string]any{
			"name":           o.Name,
			"description":    o.Description,
			"category":       o.Category,
			"price":          o.Price,
			"estimated_time": o.EstimatedTime,
			"active":         o.Active,
			"updated_at":     o.UpdatedAt,
		})
	if result.Error != nil {
		return storeErr(result.Error, "offering")
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "offering"}
	}
	return nil
}

func (r *OfferingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.PortfolioItem{}, "offering_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Offering{}, "id = ?", id).Error
	})
}

func (r *OfferingRepository) ListForProfessional(ctx context.Context, professionalID string) ([]domain.Offering, error) {
	var records []models.Offering
	err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	offerings := make([]domain.Offering, 0, len(records))
	for _, m := range records {
		offerings = append(offerings, offeringToDomain(m))
	}
	return offerings, nil
}

// ReplacePortfolio swaps the offering's work samples wholesale inside one
// transaction.
func (r *OfferingRepository) ReplacePortfolio(ctx context.Context, offeringID int64, items []domain.PortfolioItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.PortfolioItem{}, "offering_id = ?", offeringID).Error; err != nil {
			return err
		}
		for _, item := range items {
			record := portfolioItemToModel(item)
			record.OfferingID = offeringID
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
