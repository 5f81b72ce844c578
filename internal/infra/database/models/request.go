package models

import (
	"time"
)

type ServiceRequest struct {
	ID                int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	ClientID          string     `json:"clientId" gorm:"type:text;index;not null"`
	Client            User       `json:"-" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE;"`
	ProfessionalID    string     `json:"professionalId" gorm:"type:text;index;not null"`
	Professional      User       `json:"-" gorm:"foreignKey:ProfessionalID;constraint:OnDelete:CASCADE;"`
	Title             string     `json:"title" gorm:"type:text;not null"`
	Description       string     `json:"description" gorm:"type:text;not null"`
	Category          *string    `json:"category" gorm:"type:text"`
	Location          *string    `json:"location" gorm:"type:text"`
	AgreedPrice       float64    `json:"agreedPrice" gorm:"type:numeric;not null;default:0"`
	State             int        `json:"state" gorm:"type:integer;not null;default:0;index"`
	RequestedAt       time.Time  `json:"requestedAt" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
	AcceptedAt        *time.Time `json:"acceptedAt" gorm:"type:timestamp with time zone"`
	CompletedAt       *time.Time `json:"completedAt" gorm:"type:timestamp with time zone"`
	ProfessionalReply *string    `json:"professionalReply" gorm:"type:text"`
}

type Rating struct {
	ID             int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	RequestID      int64          `json:"requestId" gorm:"uniqueIndex;not null"`
	Request        ServiceRequest `json:"-" gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE;"`
	RaterID        string         `json:"raterId" gorm:"type:text;not null"`
	ProfessionalID string         `json:"professionalId" gorm:"type:text;index;not null"`
	Score          int            `json:"score" gorm:"type:integer;not null"`
	Comment        *string        `json:"comment" gorm:"type:text"`
	RatedAt        time.Time      `json:"ratedAt" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
	Reply          *string        `json:"reply" gorm:"type:text"`
	RepliedAt      *time.Time     `json:"repliedAt" gorm:"type:timestamp with time zone"`
}
