package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/edsg/edsg/internal/domain"
)

// MessageRepository defines persistence for the message log. List and
// Thread return only rows still visible to the viewer. DeleteThreadFor
// hides the whole thread for the viewer in one store operation and
// reports how many messages the thread held.
type MessageRepository interface {
	Create(ctx context.Context, m domain.Message) (domain.Message, error)
	Get(ctx context.Context, id int64) (domain.Message, error)
	ListVisible(ctx context.Context, viewerID string) ([]domain.Message, error)
	Thread(ctx context.Context, viewerID, otherID string) ([]domain.Message, error)
	MarkThreadRead(ctx context.Context, viewerID, otherID string) (int64, error)
	SetVisibility(ctx context.Context, id int64, v domain.Visibility) error
	DeleteThreadFor(ctx context.Context, viewerID, otherID string) (int64, error)
	CountUnread(ctx context.Context, viewerID string) (int64, error)
}

// UserDirectory resolves counterpart profiles for conversation summaries.
type UserDirectory interface {
	Get(ctx context.Context, id string) (domain.User, error)
	ListExcept(ctx context.Context, id string) ([]domain.User, error)
}

// Signaler pushes a message event to the recipient's realtime channel.
type Signaler interface {
	MessageSent(ctx context.Context, m domain.Message) error
}

// ConversationSummary collapses a thread to one listing row.
type ConversationSummary struct {
	Counterpart domain.User    `json:"counterpart"`
	LastMessage domain.Message `json:"lastMessage"`
	Unread      int            `json:"unread"`
}

type ConversationUsecase struct {
	messages MessageRepository
	users    UserDirectory
	signal   Signaler
}

func NewConversationUsecase(messages MessageRepository, users UserDirectory, signal Signaler) *ConversationUsecase {
	return &ConversationUsecase{messages: messages, users: users, signal: signal}
}

// List groups the viewer's visible messages by counterpart and orders the
// groups by most recent message, descending.
func (uc *ConversationUsecase) List(ctx context.Context, viewerID string) ([]ConversationSummary, error) {
	msgs, err := uc.messages.ListVisible(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	groups := groupByCounterpart(viewerID, msgs)

	summaries := make([]ConversationSummary, 0, len(groups))
	for _, g := range groups {
		counterpart, err := uc.users.Get(ctx, g.counterpartID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ConversationSummary{
			Counterpart: counterpart,
			LastMessage: g.last,
			Unread:      g.unread,
		})
	}
	return summaries, nil
}

type conversationGroup struct {
	counterpartID string
	last          domain.Message
	unread        int
}

// groupByCounterpart partitions the viewer's messages: each one lands in
// exactly one group keyed by the other party.
func groupByCounterpart(viewerID string, msgs []domain.Message) []conversationGroup {
	byID := map[string]*conversationGroup{}
	order := []string{}

	for _, m := range msgs {
		other := m.Counterpart(viewerID)
		g, ok := byID[other]
		if !ok {
			g = &conversationGroup{counterpartID: other, last: m}
			byID[other] = g
			order = append(order, other)
		} else if m.SentAt.After(g.last.SentAt) {
			g.last = m
		}
		if m.RecipientID == viewerID && !m.Read {
			g.unread++
		}
	}

	groups := make([]conversationGroup, 0, len(order))
	for _, id := range order {
		groups = append(groups, *byID[id])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].last.SentAt.After(groups[j].last.SentAt)
	})
	return groups
}

// Open returns the thread with otherID oldest-first and marks every unread
// incoming message read in a single batch update.
func (uc *ConversationUsecase) Open(ctx context.Context, viewerID, otherID string) ([]domain.Message, error) {
	msgs, err := uc.messages.Thread(ctx, viewerID, otherID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.messages.MarkThreadRead(ctx, viewerID, otherID); err != nil {
		return nil, err
	}
	for i := range msgs {
		if msgs[i].RecipientID == viewerID {
			msgs[i].Read = true
		}
	}
	return msgs, nil
}

// Send stores a new message and signals the recipient.
func (uc *ConversationUsecase) Send(ctx context.Context, senderID, recipientID, text string) (domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Message{}, domain.ValidationError{Field: "text", Message: "must not be empty"}
	}
	if senderID == recipientID {
		return domain.Message{}, domain.ValidationError{Field: "recipientId", Message: "cannot message yourself"}
	}
	if _, err := uc.users.Get(ctx, recipientID); err != nil {
		return domain.Message{}, err
	}

	msg, err := uc.messages.Create(ctx, domain.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Text:        text,
		SentAt:      time.Now().UTC(),
	})
	if err != nil {
		return domain.Message{}, err
	}

	if uc.signal != nil {
		// Best effort; a dropped signal only delays the recipient's
		// badge until the next poll.
		_ = uc.signal.MessageSent(ctx, msg)
	}
	return msg, nil
}

// DeleteMessage hides the message for the acting side; once both sides
// have deleted it the row is purged.
func (uc *ConversationUsecase) DeleteMessage(ctx context.Context, viewerID string, id int64) error {
	msg, err := uc.messages.Get(ctx, id)
	if err != nil {
		return err
	}
	side, ok := msg.SideOf(viewerID)
	if !ok {
		return domain.PermissionError{Action: "delete message"}
	}
	return uc.messages.SetVisibility(ctx, id, msg.Visibility.DeleteFor(side))
}

// DeleteConversation applies the per-side delete to the whole thread in
// one store operation, purging the rows already hidden for the other
// party.
func (uc *ConversationUsecase) DeleteConversation(ctx context.Context, viewerID, otherID string) error {
	n, err := uc.messages.DeleteThreadFor(ctx, viewerID, otherID)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "conversation"}
	}
	return nil
}

// UnreadCount is the viewer's total unread, non-deleted incoming messages.
func (uc *ConversationUsecase) UnreadCount(ctx context.Context, viewerID string) (int64, error) {
	return uc.messages.CountUnread(ctx, viewerID)
}

// Contacts lists everyone the viewer could start a conversation with.
func (uc *ConversationUsecase) Contacts(ctx context.Context, viewerID string) ([]domain.User, error) {
	return uc.users.ListExcept(ctx, viewerID)
}
