package statestore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"fishshop-bot/internal/model"
)

// keyPrefix namespaces conversation keys in a shared Redis instance.
const keyPrefix = "chat_state:"

// Redis stores conversation state in a Redis instance. Keys never expire:
// a returning user resumes exactly where they left off.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed store and verifies connectivity with a ping.
func NewRedis(ctx context.Context, addr, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}

	return &Redis{client: client}, nil
}

// Get returns the stored state for chatID, or a NOT_FOUND error when the chat
// has no stored state yet.
func (r *Redis) Get(ctx context.Context, chatID int64) (model.ConversationState, error) {
	raw, err := r.client.Get(ctx, key(chatID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", model.NewNotFoundError("conversation state")
	}
	if err != nil {
		return "", model.NewUpstreamError("Redis", err)
	}
	return model.ParseState(raw)
}

// Set stores the state for chatID.
func (r *Redis) Set(ctx context.Context, chatID int64, state model.ConversationState) error {
	if err := r.client.Set(ctx, key(chatID), string(state), 0).Err(); err != nil {
		return model.NewUpstreamError("Redis", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

func key(chatID int64) string {
	return keyPrefix + strconv.FormatInt(chatID, 10)
}

var _ Store = (*Redis)(nil)
