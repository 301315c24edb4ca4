package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"docwhisperer/internal/model"
)

// AnswerCache keeps recent query answers in redis so repeated questions
// skip the model call. The cache is an optimization only: a nil
// AnswerCache (redis not configured) disables every method safely.
type AnswerCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewAnswerCache(client *redisv9.Client, ttl time.Duration) *AnswerCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &AnswerCache{client: client, ttl: ttl}
}

// GetAnswer returns the cached answer for a (provider, question) pair.
func (c *AnswerCache) GetAnswer(ctx context.Context, provider model.Provider, question string) (string, bool, error) {
	if c == nil || c.client == nil {
		return "", false, nil
	}
	raw, err := c.client.Get(ctx, c.answerKey(provider, question)).Result()
	if err == redisv9.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get answer failed: %w", err)
	}
	return raw, true, nil
}

// SetAnswer stores an answer with the configured TTL.
func (c *AnswerCache) SetAnswer(ctx context.Context, provider model.Provider, question, answer string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Set(ctx, c.answerKey(provider, question), answer, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set answer failed: %w", err)
	}
	return nil
}

func (c *AnswerCache) answerKey(provider model.Provider, question string) string {
	sum := sha1.Sum([]byte(question))
	return fmt.Sprintf("whisper:answer:%s:%s", provider, hex.EncodeToString(sum[:]))
}
