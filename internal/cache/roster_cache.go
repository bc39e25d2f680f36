package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/competition-service/internal/domain"
)

const rosterKeyPrefix = "competition:roster:"

// RosterCache stores aggregated competition rosters.
type RosterCache interface {
	Get(ctx context.Context, competitionID string) ([]domain.TeamRoster, bool, error)
	Set(ctx context.Context, competitionID string, roster []domain.TeamRoster) error
	Invalidate(ctx context.Context, competitionID string) error
}

type redisRosterCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRosterCache returns a Redis-backed cache, or nil when the client is
// missing or ttl disables caching.
func NewRedisRosterCache(client *redis.Client, ttl time.Duration) RosterCache {
	if client == nil || ttl <= 0 {
		return nil
	}
	return &redisRosterCache{client: client, ttl: ttl}
}

func rosterKey(competitionID string) string {
	return rosterKeyPrefix + competitionID
}

func (c *redisRosterCache) Get(ctx context.Context, competitionID string) ([]domain.TeamRoster, bool, error) {
	raw, err := c.client.Get(ctx, rosterKey(competitionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var roster []domain.TeamRoster
	if err := json.Unmarshal(raw, &roster); err != nil {
		return nil, false, err
	}
	return roster, true, nil
}

func (c *redisRosterCache) Set(ctx context.Context, competitionID string, roster []domain.TeamRoster) error {
	raw, err := json.Marshal(roster)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, rosterKey(competitionID), raw, c.ttl).Err()
}

func (c *redisRosterCache) Invalidate(ctx context.Context, competitionID string) error {
	return c.client.Del(ctx, rosterKey(competitionID)).Err()
}
