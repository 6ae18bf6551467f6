package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/memorymatch-go/internal/model"
	"github.com/mcoot/memorymatch-go/internal/storage"
)

// ErrTxContention is returned when the score update transaction keeps losing
// optimistic concurrency races.
var ErrTxContention = errors.New("score update aborted after repeated contention")

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, emailIndexKey(user.Email), string(user.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	// Look up user ID from email index
	userIDStr, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUser(ctx, model.UserID(userIDStr))
}

// Credential operations

func (s *Storage) SaveCredential(ctx context.Context, cred *model.Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, credentialKey(cred.UserID), data, 0).Err()
}

func (s *Storage) GetCredential(ctx context.Context, userID model.UserID) (*model.Credential, error) {
	data, err := s.client.Get(ctx, credentialKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var cred model.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

// Score operations

func (s *Storage) GetScore(ctx context.Context, userID model.UserID) (*model.Score, error) {
	data, err := s.client.Get(ctx, scoreKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrScoreNotFound
		}
		return nil, err
	}

	var score model.Score
	if err := json.Unmarshal(data, &score); err != nil {
		return nil, err
	}
	return &score, nil
}

// UpdateScore runs fn under WATCH on the user's score key, retrying on
// optimistic concurrency failure. Concurrent submissions for the same user
// therefore serialize rather than losing updates.
func (s *Storage) UpdateScore(ctx context.Context, userID model.UserID, fn storage.ScoreUpdateFn) (*model.Score, error) {
	key := scoreKey(userID)

	var result *model.Score
	txf := func(tx *redis.Tx) error {
		var current *model.Score
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil {
			var score model.Score
			if err := json.Unmarshal(data, &score); err != nil {
				return err
			}
			current = &score
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		nextData, err := json.Marshal(next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, nextData, 0)
			pipe.SAdd(ctx, scoreIndexKey(), string(userID))
			return nil
		})
		if err == nil {
			result = next
		}
		return err
	}

	retries := s.cfg.MaxTxRetries
	if retries <= 0 {
		retries = DefaultConfig().MaxTxRetries
	}
	for i := 0; i < retries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue // Another writer got in first; re-read and retry
		}
		return nil, err
	}
	return nil, ErrTxContention
}

func (s *Storage) ListScores(ctx context.Context) ([]*model.Score, error) {
	userIDs, err := s.client.SMembers(ctx, scoreIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(userIDs) == 0 {
		return []*model.Score{}, nil
	}

	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = scoreKey(model.UserID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	scores := make([]*model.Score, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var score model.Score
		if err := json.Unmarshal([]byte(val.(string)), &score); err != nil {
			continue // Skip invalid data
		}
		scores = append(scores, &score)
	}

	return scores, nil
}

// Achievement unlock operations

func (s *Storage) SaveUnlock(ctx context.Context, userID model.UserID, name model.AchievementName) (bool, error) {
	// SADD is the atomic uniqueness check; only the winner appends to the
	// order list, so duplicate concurrent unlocks collapse to one record.
	added, err := s.client.SAdd(ctx, unlocksKey(userID), string(name)).Result()
	if err != nil {
		return false, err
	}
	if added == 0 {
		return false, nil
	}

	if err := s.client.RPush(ctx, unlockOrderKey(userID), string(name)).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Storage) GetUnlocks(ctx context.Context, userID model.UserID) ([]model.AchievementName, error) {
	values, err := s.client.LRange(ctx, unlockOrderKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	names := make([]model.AchievementName, len(values))
	for i, v := range values {
		names[i] = model.AchievementName(v)
	}
	return names, nil
}
