package domain

import "time"

// Side identifies which end of a message a user is on.
type Side int

const (
	SenderSide Side = iota
	RecipientSide
)

// Visibility is the message deletion state. Each side can hide the message
// for itself; once both sides have, the row is purged for good.
type Visibility int

const (
	VisibleToBoth Visibility = iota
	HiddenForSender
	HiddenForRecipient
	Purged
)

// DeleteFor returns the state after the given side deletes the message.
// Deleting twice from the same side is a no-op.
func (v Visibility) DeleteFor(side Side) Visibility {
	switch v {
	case VisibleToBoth:
		if side == SenderSide {
			return HiddenForSender
		}
		return HiddenForRecipient
	case HiddenForSender:
		if side == RecipientSide {
			return Purged
		}
		return HiddenForSender
	case HiddenForRecipient:
		if side == SenderSide {
			return Purged
		}
		return HiddenForRecipient
	default:
		return Purged
	}
}

// HiddenFor reports whether the message is no longer visible to the side.
func (v Visibility) HiddenFor(side Side) bool {
	switch v {
	case HiddenForSender:
		return side == SenderSide
	case HiddenForRecipient:
		return side == RecipientSide
	case Purged:
		return true
	}
	return false
}

// Message is a directed text message between two users.
type Message struct {
	ID          int64      `json:"id"`
	SenderID    string     `json:"senderId"`
	RecipientID string     `json:"recipientId"`
	Text        string     `json:"text"`
	SentAt      time.Time  `json:"sentAt"`
	Read        bool       `json:"read"`
	Visibility  Visibility `json:"-"`
}

// SideOf returns the side userID occupies on the message.
func (m Message) SideOf(userID string) (Side, bool) {
	switch userID {
	case m.SenderID:
		return SenderSide, true
	case m.RecipientID:
		return RecipientSide, true
	}
	return 0, false
}

// Counterpart returns the other party's ID from the viewer's point of view.
func (m Message) Counterpart(viewerID string) string {
	if m.SenderID == viewerID {
		return m.RecipientID
	}
	return m.SenderID
}

// Event is pushed over the realtime channel when a message arrives.
type Event struct {
	Type    string  `json:"type"`
	Message Message `json:"message"`
}
