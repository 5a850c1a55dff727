package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// redisStore implements Store on Redis. Carts are stored as JSON under a
// per-session key with a sliding TTL, so abandoned carts expire on their
// own.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisStore creates a Redis-backed cart store. It verifies connectivity
// before returning so a misconfigured Redis fails at startup.
func NewRedisStore(ctx context.Context, url string, ttl time.Duration, logger zerolog.Logger) (Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger = logger.With().Str("component", "cart-redis-store").Logger()
	logger.Info().Dur("ttl", ttl).Msg("redis cart store initialised")

	return &redisStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}, nil
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

func (s *redisStore) Get(ctx context.Context, sessionID string) (Cart, error) {
	data, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Cart{}, nil
		}
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to read cart")
		return Cart{}, fmt.Errorf("failed to read cart: %w", err)
	}

	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to decode cart")
		return Cart{}, fmt.Errorf("failed to decode cart: %w", err)
	}

	return c, nil
}

func (s *redisStore) Save(ctx context.Context, sessionID string, c Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.client.Set(ctx, cartKey(sessionID), data, s.ttl).Err(); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to save cart")
		return fmt.Errorf("failed to save cart: %w", err)
	}

	return nil
}

func (s *redisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
