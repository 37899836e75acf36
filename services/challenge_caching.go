package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"backend/model"

	"github.com/redis/go-redis/v9"
)

// ChallengeCache keeps recently loaded challenge blobs in redis so summary
// and leaderboard reads do not hit Mongo for every member. Writes always go
// to Mongo first; the cache entry is invalidated, never updated in place.
type ChallengeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// GlobalChallengeCache is nil when redis is not configured; all callers
// treat the cache as optional.
var GlobalChallengeCache *ChallengeCache

func NewChallengeCache(redisURL string, ttl time.Duration) (*ChallengeCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &ChallengeCache{client: client, ttl: ttl}, nil
}

func (cc *ChallengeCache) key(userID string) string {
	return fmt.Sprintf("challenge:%s", userID)
}

func (cc *ChallengeCache) Get(ctx context.Context, userID string) (*model.ChallengeData, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID cannot be empty")
	}

	data, err := cc.client.Get(ctx, cc.key(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge data from cache: %v", err)
	}

	var challenge model.ChallengeData
	if err := json.Unmarshal(data, &challenge); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		return nil, nil
	}
	challenge.UserID = userID

	return &challenge, nil
}

func (cc *ChallengeCache) Set(ctx context.Context, data *model.ChallengeData) error {
	if data == nil || data.UserID == "" {
		return fmt.Errorf("cannot cache challenge data without a user id")
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal challenge data: %v", err)
	}

	if err := cc.client.Set(ctx, cc.key(data.UserID), payload, cc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache challenge data: %v", err)
	}

	return nil
}

func (cc *ChallengeCache) Invalidate(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("userID cannot be empty")
	}

	if err := cc.client.Del(ctx, cc.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate challenge cache: %v", err)
	}

	return nil
}
