package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/banki/finanzas-api/internal/core/domain"
)

// CaptchaStore holds issued captcha challenges until login redeems them.
// Key format: captcha:<challenge_id>. Entries expire on their TTL and are
// removed on first redemption, so a challenge can never be replayed.
type CaptchaStore struct {
	client *redis.Client
}

// NewCaptchaStore creates a CaptchaStore wrapping the given Redis client.
func NewCaptchaStore(client *redis.Client) *CaptchaStore {
	return &CaptchaStore{client: client}
}

// Save stores the challenge text under its id for the given TTL.
func (s *CaptchaStore) Save(ctx context.Context, id, text string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(id), text, ttl).Err()
}

// Redeem returns the stored text and deletes the entry in one round trip.
// Unknown or expired ids fail with domain.ErrCaptchaInvalid.
func (s *CaptchaStore) Redeem(ctx context.Context, id string) (string, error) {
	text, err := s.client.GetDel(ctx, s.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrCaptchaInvalid
		}
		return "", fmt.Errorf("redeem captcha: %w", err)
	}
	return text, nil
}

func (s *CaptchaStore) key(id string) string {
	return "captcha:" + id
}
