package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/edsg/edsg/internal/domain"
)

// SignalService fans message events out over redis pub/sub so every node
// can push them to its connected websockets.
type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

// Channel is the per-user realtime channel name.
func Channel(userID string) string {
	return "user:" + userID
}

// MessageSent publishes the new-message event to the recipient's channel.
func (s *SignalService) MessageSent(ctx context.Context, m domain.Message) error {
	return s.publish(ctx, Channel(m.RecipientID), domain.Event{
		Type:    "message",
		Message: m,
	})
}

func (s *SignalService) publish(ctx context.Context, channel string, event domain.Event) error {

	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, channel, jsonstr).Err()
	if err != nil {
		return err
	}

	return nil
}

// Subscribe opens the user's realtime channel. The caller owns the
// returned PubSub and must Close it.
func (s *SignalService) Subscribe(ctx context.Context, userID string) *redis.PubSub {
	return s.rdb.Subscribe(ctx, Channel(userID))
}
