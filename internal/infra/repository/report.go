package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edsg/edsg/internal/domain"
	"github.com/edsg/edsg/internal/infra/database/models"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func reportToDomain(m models.Report) domain.Report {
	return domain.Report{
		ID:          m.ID,
		ReporterID:  m.ReporterID,
		ReportedID:  m.ReportedID,
		Kind:        domain.ReportKind(m.Kind),
		Description: m.Description,
		State:       domain.ReportState(m.State),
		FiledAt:     m.FiledAt,
		ResolvedAt:  m.ResolvedAt,
		AdminNotes:  m.AdminNotes,
		RequestID:   m.RequestID,
	}
}

func (r *ReportRepository) Create(ctx context.Context, report domain.Report) (domain.Report, error) {
	record := models.Report{
		ReporterID:  report.ReporterID,
		ReportedID:  report.ReportedID,
		Kind:        string(report.Kind),
		Description: report.Description,
		State:       int(report.State),
		FiledAt:     report.FiledAt,
		RequestID:   report.RequestID,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.Report{}, err
	}
	return reportToDomain(record), nil
}

func (r *ReportRepository) Get(ctx context.Context, id int64) (domain.Report, error) {
	var record models.Report
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&record).Error
	if err != nil {
		return domain.Report{}, storeErr(err, "report")
	}
	return reportToDomain(record), nil
}

func (r *ReportRepository) Update(ctx context.Context, report domain.Report) error {
	result := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("id = ?", report.ID).
		Updates(map[string]any{
			"state":       int(report.State),
			"resolved_at": report.ResolvedAt,
			"admin_notes": report.AdminNotes,
		})
	if result.Error != nil {
		return storeErr(result.Error, "report")
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "report"}
	}
	return nil
}

func (r *ReportRepository) List(ctx context.Context, state *domain.ReportState) ([]domain.Report, error) {
	query := r.db.WithContext(ctx).Model(&models.Report{})
	if state != nil {
		query = query.Where("state = ?", int(*state))
	}

	var records []models.Report
	err := query.Order("filed_at DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	reports := make([]domain.Report, 0, len(records))
	for _, m := range records {
		reports = append(reports, reportToDomain(m))
	}
	return reports, nil
}
