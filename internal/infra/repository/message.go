package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edsg/edsg/internal/domain"
	"github.com/edsg/edsg/internal/infra/database/models"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func messageToDomain(m models.Message) domain.Message {
	return domain.Message{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Text:        m.Text,
		SentAt:      m.SentAt,
		Read:        m.IsRead,
		Visibility:  visibilityFromFlags(m.DeletedForSender, m.DeletedForRecipient),
	}
}

func visibilityFromFlags(forSender, forRecipient bool) domain.Visibility {
	switch {
	case forSender && forRecipient:
		return domain.Purged
	case forSender:
		return domain.HiddenForSender
	case forRecipient:
		return domain.HiddenForRecipient
	default:
		return domain.VisibleToBoth
	}
}

func visibilityToFlags(v domain.Visibility) (forSender, forRecipient bool) {
	switch v {
	case domain.HiddenForSender:
		return true, false
	case domain.HiddenForRecipient:
		return false, true
	case domain.Purged:
		return true, true
	default:
		return false, false
	}
}

func (r *MessageRepository) Create(ctx context.Context, m domain.Message) (domain.Message, error) {
	record := models.Message{
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Text:        m.Text,
		SentAt:      m.SentAt,
		IsRead:      m.Read,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.Message{}, err
	}
	return messageToDomain(record), nil
}

func (r *MessageRepository) Get(ctx context.Context, id int64) (domain.Message, error) {
	var record models.Message
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&record).Error
	if err != nil {
		return domain.Message{}, storeErr(err, "message")
	}
	return messageToDomain(record), nil
}

// ListVisible returns every message the viewer can still see, on either
// side, newest first.
func (r *MessageRepository) ListVisible(ctx context.Context, viewerID string) ([]domain.Message, error) {
	var records []models.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND deleted_for_sender = false) OR (recipient_id = ? AND deleted_for_recipient = false)",
			viewerID, viewerID).
		Order("sent_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return messagesToDomain(records), nil
}

// Thread returns the viewer's surviving messages with the other party,
// oldest first.
func (r *MessageRepository) Thread(ctx context.Context, viewerID, otherID string) ([]domain.Message, error) {
	var records []models.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ? AND deleted_for_sender = false) OR (sender_id = ? AND recipient_id = ? AND deleted_for_recipient = false)",
			viewerID, otherID, otherID, viewerID).
		Order("sent_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return messagesToDomain(records), nil
}

// DeleteThreadFor hides every message between the two parties for the
// viewer's side inside one transaction: bulk flag updates, then a purge
// of the rows both sides have deleted. Returns the thread size so the
// caller can tell an empty thread from a repeat delete.
func (r *MessageRepository) DeleteThreadFor(ctx context.Context, viewerID, otherID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Message{}).
			Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
				viewerID, otherID, otherID, viewerID).
			Count(&total).Error
		if err != nil {
			return err
		}
		if total == 0 {
			return nil
		}

		err = tx.Model(&models.Message{}).
			Where("sender_id = ? AND recipient_id = ? AND deleted_for_sender = false", viewerID, otherID).
			Update("deleted_for_sender", true).Error
		if err != nil {
			return err
		}
		err = tx.Model(&models.Message{}).
			Where("sender_id = ? AND recipient_id = ? AND deleted_for_recipient = false", otherID, viewerID).
			Update("deleted_for_recipient", true).Error
		if err != nil {
			return err
		}

		return tx.Delete(&models.Message{},
			"((sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)) AND deleted_for_sender AND deleted_for_recipient",
			viewerID, otherID, otherID, viewerID).Error
	})
	return total, err
}

// MarkThreadRead flips every unread incoming message in one statement.
func (r *MessageRepository) MarkThreadRead(ctx context.Context, viewerID, otherID string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND is_read = false", viewerID, otherID).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// SetVisibility persists the deletion state. The flags only ever move
// from false to true, so concurrent deletes converge. Purged rows are
// removed outright.
func (r *MessageRepository) SetVisibility(ctx context.Context, id int64, v domain.Visibility) error {
	if v == domain.Purged {
		return r.db.WithContext(ctx).Delete(&models.Message{}, "id = ?", id).Error
	}

	forSender, forRecipient := visibilityToFlags(v)
	updates := map[string]any{}
	if forSender {
		updates["deleted_for_sender"] = true
	}
	if forRecipient {
		updates["deleted_for_recipient"] = true
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Message{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *MessageRepository) CountUnread(ctx context.Context, viewerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("recipient_id = ? AND is_read = false AND deleted_for_recipient = false", viewerID).
		Count(&count).Error
	return count, err
}

func messagesToDomain(records []models.Message) []domain.Message {
	msgs := make([]domain.Message, 0, len(records))
	for _, m := range records {
		msgs = append(msgs, messageToDomain(m))
	}
	return msgs
}
