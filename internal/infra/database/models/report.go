package models

import (
	"time"
)

type Report struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	ReporterID  string     `json:"reporterId" gorm:"type:text;index;not null"`
	Reporter    User       `json:"-" gorm:"foreignKey:ReporterID;constraint:OnDelete:CASCADE;"`
	ReportedID  string     `json:"reportedId" gorm:"type:text;index;not null"`
	Reported    User       `json:"-" gorm:"foreignKey:ReportedID;constraint:OnDelete:CASCADE;"`
	Kind        string     `json:"kind" gorm:"type:text;not null"`
	Description string     `json:"description" gorm:"type:text;not null"`
	State       int        `json:"state" gorm:"type:integer;not null;default:0;index"`
	FiledAt     time.Time  `json:"filedAt" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
	ResolvedAt  *time.Time `json:"resolvedAt" gorm:"type:timestamp with time zone"`
	AdminNotes  *string    `json:"adminNotes" gorm:"type:text"`
	RequestID   *int64     `json:"requestId"`
}
