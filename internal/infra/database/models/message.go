package models

import (
	"time"
)

type Message struct {
	ID                  int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	SenderID            string    `json:"senderId" gorm:"type:text;index:idx_message_thread;not null"`
	Sender              User      `json:"-" gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE;"`
	RecipientID         string    `json:"recipientId" gorm:"type:text;index:idx_message_thread;not null"`
	Recipient           User      `json:"-" gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE;"`
	Text                string    `json:"text" gorm:"type:text;not null"`
	SentAt              time.Time `json:"sentAt" gorm:"type:timestamp with time zone;not null;default:clock_timestamp();index"`
	IsRead              bool      `json:"isRead" gorm:"type:boolean;not null;default:false"`
	DeletedForSender    bool      `json:"-" gorm:"type:boolean;not null;default:false"`
	DeletedForRecipient bool      `json:"-" gorm:"type:boolean;not null;default:false"`
}
