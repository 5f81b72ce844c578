package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edsg/edsg/internal/domain"
	"github.com/edsg/edsg/internal/infra/database/models"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func requestToDomain(m models.ServiceRequest) domain.ServiceRequest {
	return domain.ServiceRequest{
		ID:                m.ID,
		ClientID:          m.ClientID,
		ProfessionalID:    m.ProfessionalID,
		Title:             m.Title,
		Description:       m.Description,
		Category:          m.Category,
		Location:          m.Location,
		AgreedPrice:       m.AgreedPrice,
		State:             domain.RequestState(m.State),
		RequestedAt:       m.RequestedAt,
		AcceptedAt:        m.AcceptedAt,
		CompletedAt:       m.CompletedAt,
		ProfessionalReply: m.ProfessionalReply,
	}
}

func requestsToDomain(records []models.ServiceRequest) []domain.ServiceRequest {
	reqs := make([]domain.ServiceRequest, 0, len(records))
	for _, m := range records {
		reqs = append(reqs, requestToDomain(m))
	}
	return reqs
}

func (r *RequestRepository) Create(ctx context.Context, req domain.ServiceRequest) (domain.ServiceRequest, error) {
	record := models.ServiceRequest{
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Location:       req.Location,
		AgreedPrice:    req.AgreedPrice,
		State:          int(req.State),
		RequestedAt:    req.RequestedAt,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.ServiceRequest{}, err
	}
	return requestToDomain(record), nil
}

func (r *RequestRepository) Get(ctx context.Context, id int64) (domain.ServiceRequest, error) {
	var record models.ServiceRequest
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&record).Error
	if err != nil {
		return domain.ServiceRequest{}, storeErr(err, "request")
	}
	return requestToDomain(record), nil
}

func (r *RequestRepository) Update(ctx context.Context, req domain.ServiceRequest) error {
	result := r.db.WithContext(ctx).Model(&models.ServiceRequest{}).
		Where("id = ?", req.ID).
		Updates(map[string]any{
			"title":              req.Title,
			"description":        req.Description,
			"category":           req.Category,
			"location":           req.Location,
			"agreed_price":       req.AgreedPrice,
			"state":              int(req.State),
			"accepted_at":        req.AcceptedAt,
			"completed_at":       req.CompletedAt,
			"professional_reply": req.ProfessionalReply,
		})
	if result.Error != nil {
		return storeErr(result.Error, "request")
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "request"}
	}
	return nil
}

func (r *RequestRepository) ListForClient(ctx context.Context, clientID string) ([]domain.ServiceRequest, error) {
	var records []models.ServiceRequest
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("requested_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return requestsToDomain(records), nil
}

func (r *RequestRepository) ListForProfessional(ctx context.Context, professionalID string) ([]domain.ServiceRequest, error) {
	var records []models.ServiceRequest
	err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("requested_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return requestsToDomain(records), nil
}
