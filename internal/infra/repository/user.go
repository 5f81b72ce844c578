package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edsg/edsg/internal/domain"
	"github.com/edsg/edsg/internal/infra/database/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func userToDomain(m models.User) domain.User {
	return domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Location:     m.Location,
		Category:     m.Category,
		Specialty:    m.Specialty,
		BasePrice:    m.BasePrice,
		Bio:          m.Bio,
		PhotoURL:     m.PhotoURL,
		IsAdmin:      m.IsAdmin,
		IsPremium:    m.IsPremium,
		PremiumPlan:  m.PremiumPlan,
		IsActive:     m.IsActive,
		RegisteredAt: m.RegisteredAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func usersToDomain(ms []models.User) []domain.User {
	users := make([]domain.User, 0, len(ms))
	for _, m := range ms {
		users = append(users, userToDomain(m))
	}
	return users
}

func (r *UserRepository) Create(ctx context.Context, u domain.User, passwordHash string) error {
	record := models.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: passwordHash,
		IsActive:     u.IsActive,
		RegisteredAt: u.RegisteredAt,
	}
	return r.db.WithContext(ctx).Create(&record).Error
}

func (r *UserRepository) Get(ctx context.Context, id string) (domain.User, error) {
	var record models.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&record).Error
	if err != nil {
		return domain.User{}, storeErr(err, "user")
	}
	return userToDomain(record), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var record models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Take(&record).Error
	if err != nil {
		return domain.User{}, storeErr(err, "user")
	}
	return userToDomain(record), nil
}

func (r *UserRepository) Update(ctx context.Context, u domain.User) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"name":         u.Name,
			"location":     u.Location,
			"category":     u.Category,
			"specialty":    u.Specialty,
			"base_price":   u.BasePrice,
			"bio":          u.Bio,
			"photo_url":    u.PhotoURL,
			"is_admin":     u.IsAdmin,
			"is_premium":   u.IsPremium,
			"premium_plan": u.PremiumPlan,
			"is_active":    u.IsActive,
			"updated_at":   u.UpdatedAt,
		})
	if result.Error != nil {
		return storeErr(result.Error, "user")
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

func (r *UserRepository) PasswordHash(ctx context.Context, id string) (string, error) {
	var record models.User
	err := r.db.WithContext(ctx).
		Select("password_hash").
		Where("id = ?", id).
		Take(&record).Error
	if err != nil {
		return "", storeErr(err, "user")
	}
	return record.PasswordHash, nil
}

func (r *UserRepository) SetPasswordHash(ctx context.Context, id string, hash string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if result.Error != nil {
		return storeErr(result.Error, "user")
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

// ListExcept returns every active account except the given one, for the
// contact picker.
func (r *UserRepository) ListExcept(ctx context.Context, id string) ([]domain.User, error) {
	var records []models.User
	err := r.db.WithContext(ctx).
		Where("id != ? AND is_active = ?", id, true).
		Order("name").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return usersToDomain(records), nil
}
