package models

import (
	"time"
)

type Offering struct {
	ID             int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	ProfessionalID string     `json:"professionalId" gorm:"type:text;index;not null"`
	Professional   User       `json:"-" gorm:"foreignKey:ProfessionalID;constraint:OnDelete:CASCADE;"`
	Name           string     `json:"name" gorm:"type:text;not null"`
	Description    string     `json:"description" gorm:"type:text;not null"`
	Category       *string    `json:"category" gorm:"type:text"`
	Price          float64    `json:"price" gorm:"type:numeric;not null;default:0"`
	EstimatedTime  *string    `json:"estimatedTime" gorm:"type:text"`
	Active         bool       `json:"active" gorm:"type:boolean;not null;default:true"`
	CreatedAt      time.Time  `json:"createdAt" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	UpdatedAt      *time.Time `json:"updatedAt" gorm:"type:timestamp with time zone"`
}

type PortfolioItem struct {
	ID             int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	OfferingID     int64      `json:"offeringId" gorm:"index;not null"`
	Offering       Offering   `json:"-" gorm:"foreignKey:OfferingID;constraint:OnDelete:CASCADE;"`
	ProfessionalID string     `json:"professionalId" gorm:"type:text;index;not null"`
	Title          string     `json:"title" gorm:"type:text;not null"`
	Description    *string    `json:"description" gorm:"type:text"`
	ImageURL       *string    `json:"imageUrl" gorm:"type:text"`
	ProjectLink    *string    `json:"projectLink" gorm:"type:text"`
	Kind           string     `json:"kind" gorm:"type:text;not null;default:'image'"`
	ProjectDate    *time.Time `json:"projectDate" gorm:"type:timestamp with time zone"`
	Order          int        `json:"order" gorm:"column:display_order;type:integer;not null;default:0"`
	Active         bool       `json:"active" gorm:"type:boolean;not null;default:true"`
	Featured       bool       `json:"featured" gorm:"type:boolean;not null;default:false"`
	CreatedAt      time.Time  `json:"createdAt" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
