package models

import (
	"time"
)

type User struct {
	ID           string     `json:"id" gorm:"primaryKey;type:text"`
	Name         string     `json:"name" gorm:"type:text;not null"`
	Email        string     `json:"email" gorm:"type:text;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"type:text;not null"`
	Location     *string    `json:"location" gorm:"type:text"`
	Category     *string    `json:"category" gorm:"type:text;index"`
	Specialty    *string    `json:"specialty" gorm:"type:text"`
	BasePrice    *float64   `json:"basePrice" gorm:"type:numeric"`
	Bio          *string    `json:"bio" gorm:"type:text"`
	PhotoURL     *string    `json:"photoUrl" gorm:"type:text"`
	IsAdmin      bool       `json:"isAdmin" gorm:"type:boolean;not null;default:false"`
	IsPremium    bool       `json:"isPremium" gorm:"type:boolean;not null;default:false;index"`
	PremiumPlan  *string    `json:"premiumPlan" gorm:"type:text"`
	IsActive     bool       `json:"isActive" gorm:"type:boolean;not null;default:true;index"`
	RegisteredAt time.Time  `json:"registeredAt" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	UpdatedAt    *time.Time `json:"updatedAt" gorm:"type:timestamp with time zone"`
}

type Favorite struct {
	ClientID       string    `json:"clientId" gorm:"primaryKey;type:text"`
	Client         User      `json:"-" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE;"`
	ProfessionalID string    `json:"professionalId" gorm:"primaryKey;type:text"`
	Professional   User      `json:"-" gorm:"foreignKey:ProfessionalID;constraint:OnDelete:CASCADE;"`
	AddedAt        time.Time `json:"addedAt" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}
