package usecase

import (
	"context"
	"time"

	"github.com/edsg/edsg/internal/domain"
)

// OfferingRepository defines persistence for the catalog. ReplacePortfolio
// swaps an offering's work samples wholesale, like the original edit form.
type OfferingRepository interface {
	Create(ctx context.Context, o domain.Offering) (domain.Offering, error)
	Get(ctx context.Context, id int64) (domain.Offering, error)
	GetWithPortfolio(ctx context.Context, id int64) (domain.Offering, error)
	Update(ctx context.Context, o domain.Offering) error
	Delete(ctx context.Context, id int64) error
	ListForProfessional(ctx context.Context, professionalID string) ([]domain.Offering, error)
	ReplacePortfolio(ctx context.Context, offeringID int64, items []domain.PortfolioItem) error
}

// OfferingInput is the create/edit form for a catalog entry.
type OfferingInput struct {
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	Category      *string              `json:"category,omitempty"`
	Price         float64              `json:"price"`
	EstimatedTime *string              `json:"estimatedTime,omitempty"`
	Portfolio     []PortfolioItemInput `json:"portfolio,omitempty"`
}

type PortfolioItemInput struct {
	Title       string               `json:"title"`
	Description *string              `json:"description,omitempty"`
	ImageURL    *string              `json:"imageUrl,omitempty"`
	ProjectLink *string              `json:"projectLink,omitempty"`
	Kind        domain.PortfolioKind `json:"kind"`
	ProjectDate *time.Time           `json:"projectDate,omitempty"`
	Order       int                  `json:"order"`
}

type CatalogUsecase struct {
	offerings OfferingRepository
	users     UserDirectory
}

func NewCatalogUsecase(offerings OfferingRepository, users UserDirectory) *CatalogUsecase {
	return &CatalogUsecase{offerings: offerings, users: users}
}

// List returns the professional's own offerings, newest first.
func (uc *CatalogUsecase) List(ctx context.Context, professionalID string) ([]domain.Offering, error) {
	return uc.offerings.ListForProfessional(ctx, professionalID)
}

// Create adds an offering plus its titled work samples. Untitled portfolio
// rows are dropped silently, like the original form handler.
func (uc *CatalogUsecase) Create(ctx context.Context, professionalID string, in OfferingInput) (domain.Offering, error) {
	if err := validateOffering(in); err != nil {
		return domain.Offering{}, err
	}

	offering, err := uc.offerings.Create(ctx, domain.Offering{
		ProfessionalID: professionalID,
		Name:           in.Name,
		Description:    in.Description,
		Category:       in.Category,
		Price:          in.Price,
		EstimatedTime:  in.EstimatedTime,
		Active:         true,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		return domain.Offering{}, err
	}

	items := buildPortfolio(professionalID, offering.ID, in.Portfolio)
	if len(items) > 0 {
		if err := uc.offerings.ReplacePortfolio(ctx, offering.ID, items); err != nil {
			return domain.Offering{}, err
		}
		offering.Portfolio = items
	}
	return offering, nil
}

// Edit rewrites the offering and replaces its portfolio.
func (uc *CatalogUsecase) Edit(ctx context.Context, professionalID string, id int64, in OfferingInput) (domain.Offering, error) {
	if err := validateOffering(in); err != nil {
		return domain.Offering{}, err
	}

	offering, err := uc.owned(ctx, professionalID, id)
	if err != nil {
		return domain.Offering{}, err
	}

	now := time.Now().UTC()
	offering.Name = in.Name
	offering.Description = in.Description
	offering.Category = in.Category
	offering.Price = in.Price
	offering.EstimatedTime = in.EstimatedTime
	offering.UpdatedAt = &now

	if err := uc.offerings.Update(ctx, offering); err != nil {
		return domain.Offering{}, err
	}
	items := buildPortfolio(professionalID, id, in.Portfolio)
	if err := uc.offerings.ReplacePortfolio(ctx, id, items); err != nil {
		return domain.Offering{}, err
	}
	offering.Portfolio = items
	return offering, nil
}

// SetActive toggles the offering's visibility in the public catalog.
func (uc *CatalogUsecase) SetActive(ctx context.Context, professionalID string, id int64, active bool) error {
	offering, err := uc.owned(ctx, professionalID, id)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	offering.Active = active
	offering.UpdatedAt = &now
	return uc.offerings.Update(ctx, offering)
}

// Remove deletes the offering and its portfolio for good.
func (uc *CatalogUsecase) Remove(ctx context.Context, professionalID string, id int64) error {
	if _, err := uc.owned(ctx, professionalID, id); err != nil {
		return err
	}
	return uc.offerings.Delete(ctx, id)
}

// OfferingDetail is the public offering page payload.
type OfferingDetail struct {
	Offering     domain.Offering `json:"offering"`
	Professional domain.User     `json:"professional"`
}

// Detail loads an offering with its portfolio and owner, for anyone.
func (uc *CatalogUsecase) Detail(ctx context.Context, id int64) (OfferingDetail, error) {
	offering, err := uc.offerings.GetWithPortfolio(ctx, id)
	if err != nil {
		return OfferingDetail{}, err
	}
	professional, err := uc.users.Get(ctx, offering.ProfessionalID)
	if err != nil {
		return OfferingDetail{}, err
	}
	return OfferingDetail{Offering: offering, Professional: professional}, nil
}

func (uc *CatalogUsecase) owned(ctx context.Context, professionalID string, id int64) (domain.Offering, error) {
	offering, err := uc.offerings.Get(ctx, id)
	if err != nil {
		return domain.Offering{}, err
	}
	if offering.ProfessionalID != professionalID {
		return domain.Offering{}, domain.NotFoundError{Resource: "offering"}
	}
	return offering, nil
}

func validateOffering(in OfferingInput) error {
	if in.Name == "" {
		return domain.ValidationError{Field: "name", Message: "is required"}
	}
	if in.Description == "" {
		return domain.ValidationError{Field: "description", Message: "is required"}
	}
	if in.Price < 0 {
		return domain.ValidationError{Field: "price", Message: "must not be negative"}
	}
	return nil
}

func buildPortfolio(professionalID string, offeringID int64, inputs []PortfolioItemInput) []domain.PortfolioItem {
	items := make([]domain.PortfolioItem, 0, len(inputs))
	for _, in := range inputs {
		if in.Title == "" {
			continue
		}
		kind := in.Kind
		if kind == "" {
			kind = domain.PortfolioImage
		}
		items = append(items, domain.PortfolioItem{
			OfferingID:     offeringID,
			ProfessionalID: professionalID,
			Title:          in.Title,
			Description:    in.Description,
			ImageURL:       in.ImageURL,
			ProjectLink:    in.ProjectLink,
			Kind:           kind,
			ProjectDate:    in.ProjectDate,
			Order:          in.Order,
			Active:         true,
			CreatedAt:      time.Now().UTC(),
		})
	}
	return items
}
